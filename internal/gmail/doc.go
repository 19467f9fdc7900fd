// Package gmail implements the Gmail mailbox provider.
//
// The client wraps the Gmail Users service and exposes the three
// operations the pipeline needs: listing unread messages within a time
// window (`is:unread after:<unix>`), fetching normalized message
// details via a metadata-format get (From and Subject headers plus the
// provider-computed snippet, so no extra body fetch is needed), and
// marking a message processed by removing the UNREAD label.
//
// Authentication uses the cached OAuth token from the google package.
package gmail
