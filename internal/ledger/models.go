package ledger

import (
	"encoding/json"

	"boxoffice/pkg/api"
)

// GenesisPreviousHash is the previous_hash of every chain's first block.
const GenesisPreviousHash = "0"

// Block is one link of an event's ticket ledger. Data holds the exact JSON
// text that was hashed.
type Block struct {
	ID           uint    `gorm:"primaryKey"`
	EventID      uint    `gorm:"not null;uniqueIndex:idx_ledger_event_index,priority:1"`
	Index        int     `gorm:"column:block_index;not null;uniqueIndex:idx_ledger_event_index,priority:2"`
	Timestamp    float64 `gorm:"not null"`
	Data         string  `gorm:"type:text;not null"`
	PreviousHash string  `gorm:"size:64;not null"`
	Hash         string  `gorm:"size:64;not null;index"`
	TicketHash   *string `gorm:"size:64;uniqueIndex"`
}

func (Block) TableName() string {
	return "ledger_blocks"
}

func (b *Block) ToResponse() api.LedgerBlock {
	var data map[string]any
	if err := json.Unmarshal([]byte(b.Data), &data); err != nil {
		data = map[string]any{"raw": b.Data}
	}
	return api.LedgerBlock{
		Index:        b.Index,
		Timestamp:    b.Timestamp,
		Data:         data,
		PreviousHash: b.PreviousHash,
		Hash:         b.Hash,
	}
}

// Entry is the payload recorded for a sold ticket.
type Entry struct {
	TicketHash string `json:"ticket_hash"`
	UserPhone  string `json:"user_phone"`
	EventID    uint   `json:"event_id"`
	Tier       string `json:"tier"`
}
