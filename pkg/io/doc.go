// Package io reads render requests and writes rendered artifacts.
//
// # Request Format
//
// A render request is a JSON object naming the text, the options, and the
// output formats. Option keys match [svgtext.Options]:
//
//	{
//	  "text": "ZALA13",
//	  "options": {
//	    "width": 400,
//	    "height": 200,
//	    "fontSize": 60,
//	    "fill": "#2c3e50",
//	    "stroke": "#ecf0f1",
//	    "strokeWidth": 2
//	  },
//	  "formats": ["svg", "png"]
//	}
//
// The same document is accepted by "textsvg render --request" and by
// POST /render on the HTTP server.
//
// # Artifacts
//
// [DownloadName] derives the file name a browser download would use,
// e.g. "ZALA13.svg". [ContentType] returns the matching media type.
// [Export] writes a set of artifacts next to each other as base.format.
//
// [svgtext.Options]: github.com/matzehuels/textsvg/pkg/svgtext.Options
package io
