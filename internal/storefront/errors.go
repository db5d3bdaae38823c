package storefront

import "errors"

// 结算流程的业务错误
var (
	ErrInvalidCartItem         = errors.New("cart item invalid")
	ErrCartEmpty               = errors.New("cart is empty")
	ErrLoginRequired           = errors.New("login required")
	ErrShippingIncomplete      = errors.New("shipping info incomplete")
	ErrPhoneTooShort           = errors.New("phone number too short")
	ErrInvalidCheckoutStep     = errors.New("checkout step invalid")
	ErrPaymentMethodInvalid    = errors.New("payment method invalid")
	ErrPaymentMethodRequired   = errors.New("payment method not selected")
	ErrPaymentInProgress       = errors.New("payment already in progress")
	ErrGatewayUnavailable      = errors.New("payment gateway unavailable")
	ErrOrderNotFound           = errors.New("order not found")
	ErrStatusTransitionInvalid = errors.New("order status transition invalid")
)
