package resourceconfig

import "errors"

// ErrCacheMiss возвращается Store, когда ключ отсутствует
var ErrCacheMiss = errors.New("resourceconfig.cache: cache miss")
