// Package migrations はユーザーテーブルのスキーマ定義を埋め込みます。
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
