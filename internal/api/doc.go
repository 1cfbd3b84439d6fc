// Package api 定義 HTTP 與 WebSocket 的對外路由。
//
// handlers 子包負責把請求轉成對 service 層的呼叫並組裝回應；
// 遊戲本身的規則不在這一層，這裡只做解析、驗證與狀態碼的對應。
package api
