// Package pagination turns cursor-paginated listing endpoints into lazy,
// demand-driven item streams.
//
// PushShift pages results by an opaque cursor derived from the last item of
// each page (the created_utc timestamp for reddit content). This package
// implements the pull loop around that contract: fetch a page, yield its
// items one at a time, then fetch the next page addressed by the last
// item's token.
//
// Example usage:
//
//	stream := pagination.NewStream[*models.Post](source, pagination.Config{
//		PageInterval: 500 * time.Millisecond,
//	})
//	for {
//		post, err := stream.Next(ctx)
//		if errors.Is(err, pagination.ErrStreamEnd) {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		fmt.Println(post.Title)
//	}
//
// The stream:
//   - Keeps exactly one page fetch in flight, driven by consumer demand
//   - Spaces consecutive fetches by a configurable minimum interval
//   - Ends cleanly on an empty page or a cursor that stops advancing
//   - Surfaces fetch and decode failures as terminal errors, never
//     skipping a page or retrying past one
//   - Issues no further requests once the consumer stops pulling
package pagination
