package services

// QuoteCacheField exposes the cache field layout to the external test package.
var QuoteCacheField = quoteCacheField
