package zoominfo

import (
	"zoomgrab/lib/restyutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("zoomgrab.lib.scrapers.zoominfo")

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput makes every client constructed afterwards
// dump its HTTP exchanges to `out`. Debugging aid for when the site's
// markup shifts underneath the extraction selectors.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
