// Package huntr is a Go client for the Hero Huntr search backend: it keeps
// per-session search state (query, page, filters), memoizes result pages
// and coalesces identical backend requests.
//
//	client, _ := huntr.New(huntr.WithBackend("http://localhost:5000"))
//	defer client.Close()
//
//	s, _ := client.NewSession(huntr.Superhero)
//	s.Search(ctx, "Batman")
//
//	f, _ := huntr.DefaultFilters(huntr.Superhero).WithRange("power", 50, 100)
//	f, _ = f.WithChoice("alignment", "good")
//	st, _ := s.ApplyFilters(ctx, f)
//	for _, card := range huntr.Render(st).Cards {
//	    fmt.Println(card.Title, card.Badges)
//	}
//
// Results can be shared between processes through Redis:
//
//	client, _ := huntr.New(
//	    huntr.WithBackend("http://localhost:5000"),
//	    huntr.WithRedis("localhost:6379", ""),
//	)
package huntr
