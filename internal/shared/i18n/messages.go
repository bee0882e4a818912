package i18n

// Keys for error messages returned through the HTTP envelope.
const (
	KeyValidationFailed    = "validation_failed"
	KeyTicketNotFound      = "ticket_not_found"
	KeyTicketForbidden     = "ticket_forbidden"
	KeyTicketDeleteAdmin   = "ticket_delete_admin_only"
	KeyEmailRequestMissing = "email_request_not_found"
	KeyEmailRequestDenied  = "email_request_forbidden"
	KeyUnauthorized        = "unauthorized"
	KeyRateLimited         = "rate_limited"
	KeyPermissionDenied    = "permission_denied"
	KeyInternal            = "internal_error"
)

var catalog = map[string]map[Lang]string{
	KeyValidationFailed: {
		EN: "Validation failed",
		TH: "ข้อมูลไม่ถูกต้อง",
	},
	KeyTicketNotFound: {
		EN: "Ticket not found",
		TH: "ไม่พบรายการแจ้งปัญหา",
	},
	KeyTicketForbidden: {
		EN: "You do not have access to this ticket",
		TH: "คุณไม่มีสิทธิ์เข้าถึงรายการแจ้งปัญหานี้",
	},
	KeyTicketDeleteAdmin: {
		EN: "Only administrators can delete tickets",
		TH: "เฉพาะผู้ดูแลระบบเท่านั้นที่ลบรายการแจ้งปัญหาได้",
	},
	KeyEmailRequestMissing: {
		EN: "Email request not found",
		TH: "ไม่พบคำขออีเมล",
	},
	KeyEmailRequestDenied: {
		EN: "You do not have access to this email request",
		TH: "คุณไม่มีสิทธิ์เข้าถึงคำขออีเมลนี้",
	},
	KeyUnauthorized: {
		EN: "Authentication required",
		TH: "กรุณาเข้าสู่ระบบ",
	},
	KeyRateLimited: {
		EN: "Too many requests, please try again later",
		TH: "มีการส่งคำขอมากเกินไป กรุณาลองใหม่ภายหลัง",
	},
	KeyPermissionDenied: {
		EN: "Permission denied",
		TH: "ไม่มีสิทธิ์ดำเนินการ",
	},
	KeyInternal: {
		EN: "Internal server error occurred",
		TH: "เกิดข้อผิดพลาดภายในระบบ",
	},
}

// Lookup returns the message for key in lang, falling back to English.
func Lookup(lang Lang, key string) (string, bool) {
	entry, ok := catalog[key]
	if !ok {
		return "", false
	}
	if msg, ok := entry[lang]; ok {
		return msg, true
	}
	msg, ok := entry[EN]
	return msg, ok
}
