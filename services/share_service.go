package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"

	"shoreSquadAPI/internal/types/rally"
)

// RallySource is the lookup the share flow needs. Satisfied by
// *RallyService.
type RallySource interface {
	GetRally(ctx context.Context, id string) (*rally.Rally, error)
}

type ShareService struct {
	rallies RallySource
}

func NewShareService(rallies RallySource) *ShareService {
	return &ShareService{rallies: rallies}
}

type ShareResponse struct {
	RallyID      string `json:"rally_id"`
	RallyName    string `json:"rally_name"`
	DeepLink     string `json:"deep_link"`
	QrCodeBase64 string `json:"qr_code_base64"`
}

// GenerateShareCode builds the deep link for one rally and renders it as a
// QR PNG, base64 encoded for straight embedding in an <img> tag.
func (s *ShareService) GenerateShareCode(ctx context.Context, rallyID string) (*ShareResponse, error) {
	r, err := s.rallies.GetRally(ctx, rallyID)
	if err != nil {
		return nil, err
	}

	deepLink := fmt.Sprintf("shoresquad://rally/join/%s", r.ID)

	pngBytes, err := qrcode.Encode(deepLink, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR png: %w", err)
	}

	return &ShareResponse{
		RallyID:      r.ID,
		RallyName:    r.Name,
		DeepLink:     deepLink,
		QrCodeBase64: base64.StdEncoding.EncodeToString(pngBytes),
	}, nil
}
