// Package wire encodes vendor feature reports for ch57x-family
// macropads.
//
// Every report starts with report ID 0x03. Programming packets carry an
// 8-byte header followed by fixed 3-byte step records, padded with
// zeros to the profile's packet size. Actions with more steps than one
// packet holds continue in follow-up packets that repeat the header
// with an incremented continuation index.
//
// Encoding is deterministic: the same input always produces the same
// byte stream.
package wire
