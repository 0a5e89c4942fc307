// Package security は、すべてのレスポンスに付与するセキュリティヘッダーを定義します。
//
// Content-Security-Policy はディレクティブの順序付きリストとして組み立て、
// それ以外のハードニング用ヘッダーは既定値のまま一括で付与します。
package security
