// Package render formats item records as Telegram-HTML message bodies.
//
// Messages reveal in two phases: a first edit with stats but no mods and a
// "Loading mods..." trailer, then a second edit with the full record. The
// Phase argument to Render selects between them; Preview produces the even
// shorter body sent the moment an inline result is picked.
//
// # Stat priority
//
// Stat lines prefer a pre-formatted range text over a raw min/max pair over a
// flat value, and consume the redundant numeric fields once a formatted
// counterpart is emitted. Known stats use fixed labels (crit chance gains a
// percent suffix and two-decimal formatting); anything left over renders
// under a de-underscored Title Case label, skipping empty values, literal
// zeros, internal keys, and embedded-HTML columns.
//
// # Safety rails
//
// Every dynamic value is HTML-escaped, link targets are percent-encoded, and
// Truncate caps bodies at 4000 characters so the final message stays under
// the channel's 4096-character limit. StripTags supports the plain-text
// re-send path used when the channel rejects the markup.
package render
