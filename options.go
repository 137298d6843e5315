package ogrlib

import "sync"

// Process-local option overlay, mirroring GDAL's config-option style. Values
// set here take effect on the next toolbox call that reads the key; keys the
// library consults are the OPT_* constants in config.go.
var (
	optLock sync.RWMutex
	options = map[string]string{}
)

func SetOption(key, value string) {
	optLock.Lock()
	options[key] = value
	optLock.Unlock()
}

// Option returns the configured value for key, or def when unset.
func Option(key, def string) string {
	optLock.RLock()
	v, ok := options[key]
	optLock.RUnlock()
	if !ok {
		return def
	}
	return v
}

func ClearOption(key string) {
	optLock.Lock()
	delete(options, key)
	optLock.Unlock()
}
