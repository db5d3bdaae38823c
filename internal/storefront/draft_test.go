package storefront

import (
	"errors"
	"testing"

	"github.com/kalakriti-next/internal/constants"
	"github.com/kalakriti-next/internal/models"
)

func TestNormalizeStep(t *testing.T) {
	cases := map[string]string{
		"address":  constants.CheckoutStepAddress,
		"shipping": constants.CheckoutStepAddress,
		"summary":  constants.CheckoutStepSummary,
		"payment":  constants.CheckoutStepPayment,
		"unknown":  "",
		"":         "",
	}
	for in, want := range cases {
		if got := NormalizeStep(in); got != want {
			t.Fatalf("NormalizeStep(%q) = %q, want %q", in, got, want)
		}
	}
}

func validShipping() models.ShippingInfo {
	return models.ShippingInfo{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		Address:  "12 MG Road",
		City:     "Bengaluru",
		State:    "Karnataka",
		Pincode:  "560001",
	}
}

func TestValidateShipping(t *testing.T) {
	if err := validateShipping(validShipping()); err != nil {
		t.Fatalf("完整信息不应报错: %v", err)
	}

	missing := validShipping()
	missing.Pincode = ""
	if err := validateShipping(missing); !errors.Is(err, ErrShippingIncomplete) {
		t.Fatalf("缺 pincode 应返回 ErrShippingIncomplete, got %v", err)
	}

	short := validShipping()
	short.Phone = "12345"
	if err := validateShipping(short); !errors.Is(err, ErrPhoneTooShort) {
		t.Fatalf("短手机号应返回 ErrPhoneTooShort, got %v", err)
	}
}

func TestSanitizeShipping(t *testing.T) {
	info := sanitizeShipping(models.ShippingInfo{
		FullName: "  Asha Rao  ",
		Email:    " asha@example.com ",
		Phone:    " 9876543210 ",
		Address:  " 12 MG Road ",
		City:     " Bengaluru ",
		State:    " Karnataka ",
		Pincode:  " 560001 ",
	})
	if info.FullName != "Asha Rao" || info.Pincode != "560001" || info.Phone != "9876543210" {
		t.Fatalf("首尾空白未去除: %+v", info)
	}
}
