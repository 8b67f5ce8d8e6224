package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateLayoutZeroPadsDay(t *testing.T) {
	d := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "September 05, 2026", d.Format(DateLayout))

	d = time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "September 15, 2026", d.Format(DateLayout))
}
