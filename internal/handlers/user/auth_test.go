package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aodai_back_end/internal/models"
	"aodai_back_end/internal/utils"
)

func TestProfileInputApplyPatchesDeliveryAddress(t *testing.T) {
	u := models.NewUser("Nguyen Van A", "a@example.com", "$2a$10$hash", time.Now())
	in := profileInput{
		FullName: "Nguyễn Văn A",
		Province: "Hà Nội",
		District: "Hoàn Kiếm",
		Ward:     "Hàng Trống",
		Address:  "12 Phố Nhà Thờ",
		Phone:    "0901234567",
	}

	require.NoError(t, in.apply(u, time.Now()))

	assert.Equal(t, "Nguyễn Văn A", u.Address.FullName)
	assert.Equal(t, "Hà Nội", u.Address.Province)
	assert.Equal(t, "12 Phố Nhà Thờ", u.Address.Address)
	// Untouched fields keep their values.
	assert.Equal(t, "Nguyen Van A", u.Name)
	assert.Equal(t, "a@example.com", u.Email)
	assert.Equal(t, "$2a$10$hash", u.Password)
}

func TestProfileInputApplyRehashesSuppliedPassword(t *testing.T) {
	u := models.NewUser("Nguyen Van A", "a@example.com", "$2a$10$hash", time.Now())

	require.NoError(t, profileInput{Password: "m@tkhau-moi"}.apply(u, time.Now()))

	assert.NotEqual(t, "$2a$10$hash", u.Password)
	assert.True(t, utils.CheckPassword("m@tkhau-moi", u.Password))
}

func TestProfileInputApplyIgnoresEmptyFields(t *testing.T) {
	u := models.NewUser("Nguyen Van A", "a@example.com", "$2a$10$hash", time.Now())
	u.Address = models.Address{FullName: "Nguyễn Văn A", Province: "Hà Nội"}

	require.NoError(t, profileInput{}.apply(u, time.Now()))

	assert.Equal(t, "Nguyễn Văn A", u.Address.FullName)
	assert.Equal(t, "Hà Nội", u.Address.Province)
	assert.Equal(t, "$2a$10$hash", u.Password)
}
