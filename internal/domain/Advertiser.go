package domain

import "time"

// Advertiser representa a dimensão de conta de anunciante na plataforma.
// O Ingestion Upserter é o único escritor desta dimensão: first_seen_at é
// imutável e last_seen_at avança a cada avistamento.
type Advertiser struct {
	ID             int64
	Name           string
	Company        *string
	FirstIndustry  *string
	SecondIndustry *string
	Status         string
	FirstSeenAt    time.Time
	LastSeenAt     time.Time
}
