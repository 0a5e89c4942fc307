// Package server は、静的サイトを配信するHTTPサーバーを管理します。
//
// このパッケージは、HTTPサーバーの起動とシャットダウン、
// ミドルウェアの組み立て、静的ファイルとSPAフォールバックの配信を担当します。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - セキュリティヘッダー（CSPなど）の付与
//   - レスポンスのgzip圧縮
//   - すべてのオリジンに対するCORS許可
//   - 2階層のキャッシュ制御付き静的ファイル配信
//   - 未解決のパスへのSPA入口文書の返却
//
// 仕様:
//   - ルーティングとミドルウェアはginを使用
//   - 圧縮はklauspost/compressのgzhttpを使用
//   - 未処理のエラーは {"error":"Internal Server Error"} の500応答になる
//   - グレースフルシャットダウンに対応
package server
