// Package api 處理 HTTP 請求路由和處理。
//
// 這個包註冊 /user 與 /log 兩組路由，以及即時紀錄的 WebSocket 端點。
// 所有回應皆為 {success, message, data} 格式。
package api
