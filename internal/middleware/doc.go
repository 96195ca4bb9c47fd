// Package middleware 提供了 HTTP 請求處理的中間件。
//
// 這個包包含請求日誌、指標統計與 CORS 等跨請求的功能。
package middleware
