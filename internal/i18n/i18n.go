package i18n

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultLocale 默认语言（面向日本市场）
const DefaultLocale = "ja"

var messages = map[string]map[string]string{
	"ja": {
		"error.bad_request":              "リクエストが不正です",
		"error.unauthorized":             "認証が必要です",
		"error.forbidden":                "権限がありません",
		"error.internal":                 "サーバーエラーが発生しました",
		"error.conflict":                 "操作が現在の状態と競合しています",
		"error.jwt_secret_missing":       "サーバーの認証設定が不完全です",
		"error.auth_header_missing":      "認証ヘッダーがありません",
		"error.auth_header_invalid":      "認証ヘッダーの形式が不正です",
		"error.token_invalid":            "認証トークンが無効です",
		"error.account_disabled":         "アカウントが無効化されています",
		"error.tenant_mismatch":          "テナントが一致しません",
		"error.password_policy":          "パスワードがポリシーを満たしていません",
		"error.old_password_wrong":       "現在のパスワードが正しくありません",
		"error.login_failed":             "メールアドレスまたはパスワードが正しくありません",
		"error.login_too_many":           "ログイン試行回数が上限に達しました。しばらくしてから再試行してください",
		"error.estimate_locked":          "変換済みの見積は編集できません",
		"error.order_invalid_status":     "この発注ステータスへは変更できません",
		"error.export_failed":            "エクスポートに失敗しました",
		"error.alert_not_found":          "警報が見つかりません",
		"error.estimate_not_found":       "見積が見つかりません",
		"error.estimate_id_required":     "見積IDは必須です",
		"error.contract_not_found":       "契約が見つかりません",
		"error.contract_invalid_status":  "この契約ステータスへは変更できません",
		"error.order_not_found":          "発注が見つかりません",
		"error.order_items_required":     "工事項目を追加してください",
		"error.order_unassigned_items":   "協力会社が未選択の工事項目があります",
		"error.partner_not_found":        "協力会社が見つかりません",
		"error.partner_invalid":          "協力会社の入力内容が不正です",
		"error.ledger_not_found":         "工事台帳が見つかりません",
		"error.ledger_exists":            "この契約の工事台帳は既に存在します",
		"error.cost_entry_invalid":       "原価明細の入力内容が不正です",
		"error.setting_fetch_failed":     "設定の取得に失敗しました",
		"error.user_not_found":           "ユーザーが見つかりません",
		"error.user_email_exists":        "このメールアドレスは既に登録されています",
		"message.orders_created":         "発注書を作成しました",
		"message.orders_partial_failure": "一部の発注書の作成に失敗しました",
	},
	"en": {
		"error.bad_request":              "invalid request",
		"error.unauthorized":             "authentication required",
		"error.forbidden":                "permission denied",
		"error.internal":                 "internal server error",
		"error.conflict":                 "operation conflicts with current state",
		"error.jwt_secret_missing":       "server auth configuration is incomplete",
		"error.auth_header_missing":      "authorization header is missing",
		"error.auth_header_invalid":      "authorization header is malformed",
		"error.token_invalid":            "invalid auth token",
		"error.account_disabled":         "account is disabled",
		"error.tenant_mismatch":          "tenant mismatch",
		"error.password_policy":          "password does not meet the policy",
		"error.old_password_wrong":       "current password is incorrect",
		"error.login_failed":             "invalid email or password",
		"error.login_too_many":           "too many login attempts, try again later",
		"error.estimate_locked":          "a converted estimate cannot be edited",
		"error.order_invalid_status":     "illegal order status transition",
		"error.export_failed":            "export failed",
		"error.alert_not_found":          "alert not found",
		"error.estimate_not_found":       "estimate not found",
		"error.estimate_id_required":     "estimate id is required",
		"error.contract_not_found":       "contract not found",
		"error.contract_invalid_status":  "illegal contract status transition",
		"error.order_not_found":          "order not found",
		"error.order_items_required":     "work items are required",
		"error.order_unassigned_items":   "some work items have no partner assigned",
		"error.partner_not_found":        "partner not found",
		"error.partner_invalid":          "invalid partner input",
		"error.ledger_not_found":         "construction ledger not found",
		"error.ledger_exists":            "a ledger already exists for this contract",
		"error.cost_entry_invalid":       "invalid cost entry",
		"error.setting_fetch_failed":     "failed to load settings",
		"error.user_not_found":           "user not found",
		"error.user_email_exists":        "email already registered",
		"message.orders_created":         "orders created",
		"message.orders_partial_failure": "some orders failed to create",
	},
}

// ResolveLocale 解析请求语言：?lang= 优先，其次 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := normalize(c.Query("lang")); lang != "" {
		return lang
	}
	accept := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(accept, ",") {
		if lang := normalize(part); lang != "" {
			return lang
		}
	}
	return DefaultLocale
}

// T 返回指定语言的消息文本，找不到时退回默认语言，再退回 key 本身
func T(locale, key string) string {
	if table, ok := messages[normalize(locale)]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

func normalize(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		return ""
	}
	if idx := strings.IndexAny(locale, "-_;"); idx > 0 {
		locale = locale[:idx]
	}
	if _, ok := messages[locale]; ok {
		return locale
	}
	return ""
}
