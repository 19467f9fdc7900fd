// Package monitor drives the mail-to-notification pipeline.
//
// A Dispatcher takes one batch of candidate messages through a strictly
// sequential state machine per message:
//
//	listed → details fetched → categorized → rendered → delivered → marked read
//
// Failures are isolated per message: a detail-fetch or delivery failure
// abandons that message and processing continues with the next one. A
// message whose delivery failed stays unread so the next scheduled run
// reconsiders it (at-least-once semantics). A message whose delivery
// succeeded but whose mark-read failed is still counted as notified;
// only the duplicate-suppression guarantee is weakened for it.
//
// The mailbox and delivery channel are injected through the Mailbox and
// Sender interfaces so the pipeline stays independent of Gmail, IMAP,
// Slack or Twilio specifics. The Watcher re-runs the Dispatcher on a
// fixed interval for long-running deployments.
package monitor
