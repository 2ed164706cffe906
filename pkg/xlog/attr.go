package xlog

import (
	"log/slog"
	"path/filepath"
)

const badKey = "!BADKEY"

// AttrReplacer rewrites each non-group attribute before it is logged.
type AttrReplacer func(groups []string, attr Attr) Attr

// ChainReplacer calls replacers in order.
func ChainReplacer(replacers ...AttrReplacer) AttrReplacer {
	return func(groups []string, attr Attr) Attr {
		for _, repl := range replacers {
			attr = repl(groups, attr)
		}
		return attr
	}
}

// NormalizeSourceAttrReplacer trims the source file path to its base name.
func NormalizeSourceAttrReplacer() AttrReplacer {
	return func(_ []string, attr Attr) Attr {
		if attr.Key != slog.SourceKey {
			return attr
		}
		if source, ok := attr.Value.Any().(*slog.Source); ok {
			source.File = filepath.Base(source.File)
		}
		return attr
	}
}

// SuppressTimeAttrReplacer drops the top-level time attribute, mostly for
// deterministic output in tests.
func SuppressTimeAttrReplacer() AttrReplacer {
	return func(groups []string, attr Attr) Attr {
		if attr.Key == slog.TimeKey && len(groups) == 0 {
			return Attr{}
		}
		return attr
	}
}

// argsToAttrSlice pairs loosely typed arguments the way slog.Logger.With does.
func argsToAttrSlice(args []any) []Attr {
	attrs := make([]Attr, 0, len(args))
	for len(args) > 0 {
		switch x := args[0].(type) {
		case string:
			if len(args) == 1 {
				attrs = append(attrs, slog.String(badKey, x))
				args = args[1:]
				continue
			}
			attrs = append(attrs, slog.Any(x, args[1]))
			args = args[2:]
		case Attr:
			attrs = append(attrs, x)
			args = args[1:]
		default:
			attrs = append(attrs, slog.Any(badKey, x))
			args = args[1:]
		}
	}
	return attrs
}
