package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shiwano/errdef"
)

const pkgPath = "github.com/shadyar-bakr/storefront/internal/apperr"

// renderStack prints the errdef stack of err in the two-line-per-frame
// layout of runtime panics. Leading frames inside errdef and the
// constructors of this package are dropped so the first frame is the
// caller that built the error.
func renderStack(err error) string {
	var de errdef.Error
	if !errors.As(err, &de) {
		return ""
	}

	frames := de.Stack().Frames()
	for len(frames) > 0 && constructorFrame(frames[0].Func) {
		frames = frames[1:]
	}

	var b strings.Builder
	for i, f := range frames {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s\n\t%s:%d", f.Func, f.File, f.Line)
	}
	return b.String()
}

func constructorFrame(fn string) bool {
	if strings.HasPrefix(fn, "github.com/shiwano/errdef") {
		return true
	}
	rest, ok := strings.CutPrefix(fn, pkgPath+".")
	return ok && !strings.HasPrefix(rest, "Test")
}
