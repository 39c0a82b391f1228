// Package gallery implements the client-side state of the photo gallery: the rendered card
// list, the photo index, lazy reveal, incremental pagination and the full-screen viewer.
//
// # Components
//
//  1. [Gallery] : ordered cards, the equivalent of the rendered gallery container
//  2. [Tracker] : one-shot lazy reveal of cards entering a margin-extended viewport
//  3. [PageFetcher] : scroll-triggered pagination guarded by loading/hasMore
//  4. [PhotoIndex] + [IndexLoader] : navigable descriptor list, bulk loaded with a card-derived fallback
//  5. [Viewer] + [InputAdapter] : Closed/Open(i) state machine and the input translation in front of it
//
// [Session] wires the components together the way the gallery page does.
//
// # Threading
//
// Components are driven from a single event loop (the bubbletea Update goroutine). Network work is split
// so the blocking half can run elsewhere: [IndexLoader.Fetch] and [PageFetcher.Request] only talk to the
// service, while [Session.ApplyListing] and [PageFetcher.Complete] mutate state and must run on the loop.
// [PageFetcher] guards its own pagination state so at most one page request is ever in flight.
package gallery
