// Package store 提供 core.Store / core.KeyValueStore 的具体实现，
// 以及建立在其上的用户交互存储（协同过滤的数据面）。
//
// 接口定义在 core 包；本包只有实现：
//
//	var s core.Store = store.NewMemoryStore()
//	var kv core.KeyValueStore = store.NewMemoryStore()
package store

import "github.com/rushteam/outfitkit/core"

// ErrNotFound 是 core.ErrStoreNotFound 的别名，方便包内使用。
var ErrNotFound = core.ErrStoreNotFound
