// Package stranalyzer embeds the string analysis store in a Go program,
// without the HTTP server in front of it.
//
// The client runs the same analyzer, filter compiler and entry store as the
// service, on an embedded Badger database or on a Redis/Valkey deployment
// shared with a running server.
//
//	client, _ := stranalyzer.New(ctx, stranalyzer.WithInMemory())
//	defer client.Close()
//
//	e, _ := client.Create(ctx, "A man a plan")
//	fmt.Println(e.Properties.WordCount) // 4
//
//	res, _ := client.List(ctx, stranalyzer.Filter{
//	    IsPalindrome: stranalyzer.Bool(true),
//	    MinLength:    stranalyzer.Int(5),
//	})
//
//	res, _ = client.Query(ctx, "show me every palindrome")
//
// Analyze computes properties without touching the store.
package stranalyzer
