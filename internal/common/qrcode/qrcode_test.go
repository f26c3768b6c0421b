package qrcode

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator(t *testing.T) {
	assert.Equal(t, 256, NewGenerator().Size())
	assert.Equal(t, 128, NewGenerator(WithSize(128)).Size())
	assert.Equal(t, 256, NewGenerator(WithSize(0)).Size(), "非法尺寸保持默认")
}

func TestGenerator_GeneratePNG(t *testing.T) {
	g := NewGenerator(WithSize(200), WithRecoveryLevel(High))

	data, err := g.GeneratePNG("HBV1|BK1|1|2026-01-01|2026-01-03")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, img.Bounds().Dx(), img.Bounds().Dy())
}

func TestGenerator_GeneratePNG_Empty(t *testing.T) {
	_, err := NewGenerator().GeneratePNG("")
	assert.Error(t, err)
}

func TestGenerator_GenerateDataURL(t *testing.T) {
	url, err := NewGenerator(WithRecoveryLevel(Low)).GenerateDataURL("hello")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}

func TestVoucher_EncodeAndParse(t *testing.T) {
	v := Voucher{
		BookingNo:    "BK20260101120000123456",
		RoomID:       42,
		CheckInDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
	}

	content := v.Encode()
	assert.Equal(t, "HBV1|BK20260101120000123456|42|2026-01-01|2026-01-03", content)

	parsed, err := ParseVoucher(content)
	require.NoError(t, err)
	assert.Equal(t, v, parsed)
}

func TestParseVoucher_Invalid(t *testing.T) {
	for _, content := range []string{
		"",
		"HBV1|BK1|1|2026-01-01",
		"XXX|BK1|1|2026-01-01|2026-01-02",
		"HBV1|BK1|abc|2026-01-01|2026-01-02",
		"HBV1|BK1|1|01/01/2026|2026-01-02",
		"HBV1|BK1|1|2026-01-01|tomorrow",
	} {
		_, err := ParseVoucher(content)
		assert.Error(t, err, content)
	}
}
