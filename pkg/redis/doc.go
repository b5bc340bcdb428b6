// Package redis wraps go-redis with retrying connect and healthcheck helpers.
// The only in-tree consumer is the optional tenant directory cache.
package redis
