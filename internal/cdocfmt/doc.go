// Package cdocfmt turns cdoc event streams into text: rendered documentation
// for binding generators (Render, Format, Callback) and event dumps for
// inspection (FormatEventsPretty, FormatEventsJSON, FormatEventsYAML).
package cdocfmt
