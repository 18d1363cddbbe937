package dto

import analyticsdto "studia/internal/modules/analytics/dto"

// Envelope is a delivered result plus the token that proved it fresh.
type Envelope struct {
	SlotID string
	Token  uint64
	Result analyticsdto.ResultOutput
}
