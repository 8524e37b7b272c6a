package bansservice

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ss13hub/banwatch/app/modules/bans/domain"
	"github.com/ss13hub/banwatch/app/modules/bans/infrastructure/cache"
	"github.com/ss13hub/banwatch/app/modules/bans/infrastructure/encoding"
	bansdb "github.com/ss13hub/banwatch/app/modules/bans/infrastructure/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCodec struct{}

func (failingCodec) Decode([]byte) (string, error) {
	return "", errors.New("malformed byte sequence")
}

func newMapperService(codec encoding.ReasonCodec) *Service {
	return NewService(&bansdb.FakeRepository{}, cache.NewExistenceCache(), codec, nil, nil, nil)
}

func TestMapRowVariants(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	expires := issued.Add(3 * 24 * time.Hour)

	common := domain.Common{
		PlayerID: "steve123",
		AdminID:  "adminx",
		Reason:   "Griefing",
		IssuedBy: "AdminX",
		IssuedAt: issued,
	}

	tests := []struct {
		name string
		row  bansdb.BanRow
		want domain.Ban
	}{
		{
			name: "permaban",
			row: bansdb.BanRow{
				BanTime:  issued,
				Reason:   []byte("Griefing"),
				Ckey:     "Steve123",
				ACkey:    "AdminX",
				AdminWho: "AdminX",
				BanType:  "PERMABAN",
			},
			want: domain.PermaBan{Common: common},
		},
		{
			name: "tempban",
			row: bansdb.BanRow{
				BanTime:        issued,
				Reason:         []byte("Griefing"),
				Duration:       sql.NullInt64{Int64: 4320, Valid: true},
				ExpirationTime: sql.NullTime{Time: expires, Valid: true},
				Ckey:           "Steve123",
				ACkey:          "AdminX",
				AdminWho:       "AdminX",
				BanType:        "TEMPBAN",
			},
			want: domain.TempBan{Common: common, DurationMinutes: 4320, ExpiresAt: expires},
		},
		{
			name: "job permaban",
			row: bansdb.BanRow{
				BanTime:  issued,
				Job:      sql.NullString{String: "Captain", Valid: true},
				Reason:   []byte("Griefing"),
				Ckey:     "Steve123",
				ACkey:    "AdminX",
				AdminWho: "AdminX",
				BanType:  "JOB_PERMABAN",
			},
			want: domain.JobPermaBan{Common: common, Job: "Captain"},
		},
		{
			name: "job tempban",
			row: bansdb.BanRow{
				BanTime:        issued,
				Job:            sql.NullString{String: "Clown", Valid: true},
				Reason:         []byte("Griefing"),
				Duration:       sql.NullInt64{Int64: 60, Valid: true},
				ExpirationTime: sql.NullTime{Time: expires, Valid: true},
				Ckey:           "Steve123",
				ACkey:          "AdminX",
				AdminWho:       "AdminX",
				BanType:        "JOB_TEMPBAN",
			},
			want: domain.JobTempBan{Common: common, Job: "Clown", DurationMinutes: 60, ExpiresAt: expires},
		},
	}

	svc := newMapperService(encoding.NewWindows1251Codec())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := svc.mapRow(context.Background(), tt.row)
			require.True(t, ok)
			assert.Equal(t, tt.want.Kind(), got.Kind())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mapped ban mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMapRowTempBanKeepsExpiryAfterIssue(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newMapperService(encoding.NewWindows1251Codec())

	got, ok := svc.mapRow(context.Background(), bansdb.BanRow{
		BanTime:        issued,
		Reason:         []byte("x"),
		Duration:       sql.NullInt64{Int64: 30, Valid: true},
		ExpirationTime: sql.NullTime{Time: issued.Add(30 * time.Minute), Valid: true},
		Ckey:           "steve123",
		ACkey:          "adminx",
		BanType:        "TEMPBAN",
	})

	require.True(t, ok)
	temp, ok := got.(domain.TempBan)
	require.True(t, ok)
	assert.False(t, temp.ExpiresAt.Before(temp.IssuedAt))
}

func TestMapRowDecodesLegacyReason(t *testing.T) {
	svc := newMapperService(encoding.NewWindows1251Codec())

	got, ok := svc.mapRow(context.Background(), bansdb.BanRow{
		Reason:  []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2},
		Ckey:    "steve123",
		ACkey:   "adminx",
		BanType: "PERMABAN",
	})

	require.True(t, ok)
	assert.Equal(t, "Привет", got.Base().Reason)
}

func TestMapRowsDropsUnmappableRows(t *testing.T) {
	svc := newMapperService(encoding.NewWindows1251Codec())

	rows := []bansdb.BanRow{
		{Reason: []byte("keep"), Ckey: "steve123", ACkey: "adminx", BanType: "PERMABAN"},
		{Reason: []byte("drop"), Ckey: "steve123", ACkey: "adminx", BanType: "SOMETHING_NEW"},
		{Reason: []byte("keep too"), Ckey: "steve123", ACkey: "adminx", BanType: "PERMABAN"},
	}

	bans := svc.mapRows(context.Background(), rows)

	require.Len(t, bans, 2)
	assert.Equal(t, "keep", bans[0].Base().Reason)
	assert.Equal(t, "keep too", bans[1].Base().Reason)
}

func TestMapRowsDropsUndecodableReason(t *testing.T) {
	svc := newMapperService(failingCodec{})

	bans := svc.mapRows(context.Background(), []bansdb.BanRow{
		{Reason: []byte{0xFF}, Ckey: "steve123", ACkey: "adminx", BanType: "PERMABAN"},
	})

	assert.Empty(t, bans)
}
