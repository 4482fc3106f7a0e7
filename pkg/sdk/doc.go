// Package docsearch provides a Go client for keyword search over a small
// document index backed by Elasticsearch or the Redis 8 Query Engine.
//
// Documents carry a title, content and one of four content types
// (news, tutorial, review, report). Title and content are full-text;
// content type is an exact-match filter.
//
//	client, _ := docsearch.New(ctx, docsearch.WithElasticsearch("http://localhost:9200"))
//	defer client.Close()
//
//	n, _ := client.Provision(ctx, docsearch.DefaultDocuments())
//	results, _ := client.Search(ctx, "open source", docsearch.ContentTypeTutorial)
//	for _, r := range results {
//	    fmt.Println(r.Title, r.Snippet)
//	}
package docsearch
