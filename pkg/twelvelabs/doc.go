// Package twelvelabs provides types, interfaces, and helpers for working with
// the Twelve Labs video understanding API.
//
// # Overview
//
// The package defines the domain types (Index, Task, Video, SearchResultPage,
// Clip, generation results) and the interfaces of the resource clients. A
// concrete implementation is provided by the tlclient package.
//
//	cli, err := tlclient.New(&twelvelabs.Config{APIKey: os.Getenv("TWELVELABS_API_KEY")})
//	if err != nil { log.Fatal(err) }
//
//	indexes, err := cli.Indexes().List(ctx, nil)
//
// # Search pagination
//
// Search().Query returns a SearchCursor positioned on the first page. Next
// fetches the following page from the opaque continuation token and reports
// false once the stream is exhausted:
//
//	cursor, err := cli.Search().Query(ctx, &twelvelabs.SearchRequest{
//	  IndexID: indexID,
//	  Query:   "a cat jumping",
//	  Options: []twelvelabs.SearchOption{twelvelabs.SearchOptionVisual},
//	})
//	for page := cursor.Page(); page != nil; {
//	  // use page.Clips
//	  next, ok, err := cursor.Next(ctx)
//	  if err != nil || !ok { break }
//	  page = next
//	}
//
// # Waiting for ingestion
//
// Tasks().WaitForDone polls a task at a fixed interval until it is ready or
// failed, invoking an optional callback with every fetched state:
//
//	task, err := cli.Tasks().WaitForDone(ctx, taskID, &twelvelabs.WaitOptions{
//	  Interval: 5 * time.Second,
//	  MaxWait:  30 * time.Minute,
//	  Callback: func(t *twelvelabs.Task) error { log.Println(t.Status); return nil },
//	})
//
// Rate limits, 5xx responses and transport failures are retried within the
// budget; other errors end the wait immediately.
//
// # Errors
//
// Non-2xx responses are returned as *APIError with one of the ErrorKind values.
// Transport failures are *TransportError and exhausted wait budgets are
// *TimeoutError. All three match the package sentinels with errors.Is:
//
//	if errors.Is(err, twelvelabs.ErrNotFound) { ... }
package twelvelabs
