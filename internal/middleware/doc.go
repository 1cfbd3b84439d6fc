// Package middleware 提供 Gin 的請求中間件。
//
// 目前只有 JWT 身分驗證，供題庫維護等管理後台路由使用。
package middleware
