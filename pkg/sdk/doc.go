// Package docgate is an in-process Go client for a document index served by
// OpenSearch. It runs the same use cases as the docgate HTTP API without the
// HTTP hop.
//
//	client, _ := docgate.New(ctx,
//	    docgate.WithEngine("localhost", 9200),
//	    docgate.WithBasicAuth("admin", "admin"),
//	    docgate.WithIndex("dev.paytic.visa_fees"),
//	)
//	defer client.Close()
//
//	_, _ = client.Indexes().Ensure(ctx, "dev.paytic.visa_fees", docgate.IndexSpec{Shards: 1})
//	id, _ := client.Documents().Create(ctx, docgate.Document{Body: []byte(`{"name":"Visa Gold"}`)})
//	res, _ := client.Search().Query(ctx, docgate.SearchRequest{Intent: docgate.IntentExact, Query: "Visa Gold"})
//	dash, _ := client.Analytics().Dashboard(ctx)
package docgate
