// Package imapmail implements the IMAP mailbox provider.
//
// It is the generic-mailbox counterpart to the gmail package: unread
// candidates are found with a UID search for unseen messages since the
// window cutoff, details come from an envelope fetch plus a peeking
// body fetch (so reading the preview never sets \Seen), and marking a
// message processed stores the \Seen flag.
//
// Each operation opens a fresh connection and logs out when done; the
// batch sizes this pipeline handles do not justify connection reuse.
package imapmail
