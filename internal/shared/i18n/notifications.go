package i18n

import "fmt"

// Notification texts. Targets receive one language chosen by configuration.

func SubjectNewTicket(lang Lang, ticketID uint, title string) string {
	if lang == TH {
		return fmt.Sprintf("[แจ้งปัญหาใหม่ #%d] %s", ticketID, title)
	}
	return fmt.Sprintf("[New Ticket #%d] %s", ticketID, title)
}

func SubjectStatusUpdate(lang Lang, ticketID uint, status string) string {
	if lang == TH {
		return fmt.Sprintf("[อัปเดตสถานะ #%d] %s", ticketID, status)
	}
	return fmt.Sprintf("[Ticket #%d] Status changed to %s", ticketID, status)
}

func SubjectNewEmailRequest(lang Lang, englishName string) string {
	if lang == TH {
		return fmt.Sprintf("[คำขออีเมลใหม่] %s", englishName)
	}
	return fmt.Sprintf("[New Email Request] %s", englishName)
}

// Label returns a short field label used in message bodies.
func Label(lang Lang, field string) string {
	if lang == TH {
		if l, ok := thaiLabels[field]; ok {
			return l
		}
	}
	if l, ok := englishLabels[field]; ok {
		return l
	}
	return field
}

var englishLabels = map[string]string{
	"category":    "Category",
	"priority":    "Priority",
	"status":      "Status",
	"old_status":  "Previous status",
	"reported_by": "Reported by",
	"assigned_to": "Assigned to",
	"department":  "Department",
	"created_at":  "Created",
	"updated_at":  "Updated",
	"description": "Description",
	"thai_name":   "Thai name",
	"eng_name":    "English name",
	"nickname":    "Nickname",
	"position":    "Position",
	"phone":       "Phone",
	"reply_email": "Reply to",
}

var thaiLabels = map[string]string{
	"category":    "หมวดหมู่",
	"priority":    "ความสำคัญ",
	"status":      "สถานะ",
	"old_status":  "สถานะเดิม",
	"reported_by": "ผู้แจ้ง",
	"assigned_to": "ผู้รับผิดชอบ",
	"department":  "แผนก",
	"created_at":  "วันที่แจ้ง",
	"updated_at":  "วันที่อัปเดต",
	"description": "รายละเอียด",
	"thai_name":   "ชื่อภาษาไทย",
	"eng_name":    "ชื่อภาษาอังกฤษ",
	"nickname":    "ชื่อเล่น",
	"position":    "ตำแหน่ง",
	"phone":       "เบอร์โทร",
	"reply_email": "อีเมลตอบกลับ",
}
