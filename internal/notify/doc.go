// Package notify renders and delivers email alerts.
//
// The AlertRenderer produces the fixed notification block (category,
// sender, subject, optional snippet). Two monitor.Sender
// implementations deliver it: SlackSender POSTs the block as the text
// field of a Slack incoming-webhook payload, and TwilioSender wraps it
// with the WhatsApp alert banner and sends it through the Twilio
// messaging API. Both are single-attempt, fire-and-forget sends; the
// dispatcher owns all failure handling.
package notify
