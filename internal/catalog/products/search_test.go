package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldStripsDiacritics(t *testing.T) {
	assert.Equal(t, "dien thoai", Fold("Điện Thoại"))
	assert.Equal(t, "ca phe sua da", Fold("Cà Phê Sữa Đá"))
	assert.Equal(t, "ao so mi", Fold("áo sơ mi"))
}

func TestFoldLowercasesAndTrims(t *testing.T) {
	assert.Equal(t, "usb cable", Fold("  USB Cable  "))
}

func TestFoldPlainASCII(t *testing.T) {
	assert.Equal(t, "iphone 15", Fold("iPhone 15"))
}

func TestFoldEmpty(t *testing.T) {
	assert.Equal(t, "", Fold(""))
}
