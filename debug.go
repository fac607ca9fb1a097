// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

import "log"

// _DEBUG and _LOGLEVEL gate the verbose tracing sprinkled through the
// kernels (cache hits/misses, GC triggers, resize decisions). Flip _DEBUG to
// true and raise _LOGLEVEL to get progressively louder logging from the
// standard logger; left off by default so normal use pays nothing for it.
const _DEBUG bool = false
const _LOGLEVEL int = 0

func logf(format string, args ...interface{}) {
	if _DEBUG {
		log.Printf(format, args...)
	}
}
