package minio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductKey(t *testing.T) {
	assert.Equal(t, "products/11.json", productKey(11))
}

func TestProductIDFromKey(t *testing.T) {
	tests := []struct {
		key    string
		wantID int64
		wantOK bool
	}{
		{key: "products/1.json", wantID: 1, wantOK: true},
		{key: "products/42.json", wantID: 42, wantOK: true},
		{key: "products/abc.json", wantOK: false},
		{key: "products/1.txt", wantOK: false},
		{key: "images/1.json", wantOK: false},
		{key: "products/", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			id, ok := productIDFromKey(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
