// Package telegram runs the inline search bot.
//
// The bot answers inline queries with lightweight preview articles and fills
// in the full item record after the user picks one, editing the delivered
// message in place.
//
// # Resolution triggers
//
// Three update types can start detail resolution, and all funnel into the
// same two-phase flow:
//
//  1. chosen_inline_result: the normal path, fired when a result is picked.
//  2. callback_query: the "Load Details" button, a manual fallback.
//  3. message via this bot: some clients never deliver the chosen-result
//     update; a message that still shows the loading marker is resolved
//     from its first line.
//
// # Two-phase reveal
//
// Phase 1 edits in the record without mods under a "Loading mods..."
// trailer; Phase 2 edits in the complete record. An edit rejected as "not
// modified" counts as success, a markup rejection retries the content as
// plain text, and a hard failure leaves a short error notice so the message
// never sticks on the loading marker.
package telegram
