package internal

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"paygate/entity"
)

// AdaptivePayments exposes the adaptive payments operations. Each operation is
// addressed by the URL path and authenticated with the provider headers.
type AdaptivePayments struct {
	client *Client
}

func NewAdaptivePayments(client *Client) (*AdaptivePayments, error) {
	if client.conf.Provider != entity.ProviderAdaptivePayments {
		return nil, configurationError("adaptive payments", errors.Wrapf(ErrUnsupportedProvider, "client provider %s", client.conf.Provider))
	}
	return &AdaptivePayments{client: client}, nil
}

// CreatePayRequest creates a payment to the receivers of pay. On success the
// outcome carries paypal_link for the sender approval.
func (a *AdaptivePayments) CreatePayRequest(ctx context.Context, pay *entity.PayRequest) entity.Outcome {
	if pay == nil || len(pay.Receivers) == 0 {
		return invalidRequest("Pay", errors.New("pay request has no receivers"))
	}
	options := a.envelope()
	options["actionType"] = pay.ActionType
	if options["actionType"] == "" {
		options["actionType"] = "PAY"
	}
	options["currencyCode"] = a.client.conf.Currency
	options["returnUrl"] = pay.ReturnUrl
	options["cancelUrl"] = pay.CancelUrl
	for i, receiver := range pay.Receivers {
		prefix := fmt.Sprintf("receiverList.receiver(%d).", i)
		options[prefix+"email"] = receiver.Email
		options[prefix+"amount"] = receiver.Amount
		if receiver.Primary {
			options[prefix+"primary"] = strconv.FormatBool(receiver.Primary)
		}
	}
	if pay.Memo != "" {
		options["memo"] = pay.Memo
	}
	if pay.FeesPayer != "" {
		options["feesPayer"] = pay.FeesPayer
	}
	if pay.TrackingId != "" {
		options["trackingId"] = pay.TrackingId
	}
	if a.client.conf.NotifyUrl != "" {
		options["ipnNotificationUrl"] = a.client.conf.NotifyUrl
	}

	outcome := a.client.Execute(ctx, "Pay", options)
	if payKey := outcome.Get("payKey"); !outcome.IsError() && outcome.Acknowledged() && payKey != "" {
		outcome.Fields["paypal_link"] = a.RedirectURL(payKey)
	}
	return outcome
}

func (a *AdaptivePayments) GetPaymentDetails(ctx context.Context, payKey string) entity.Outcome {
	return a.client.Execute(ctx, "PaymentDetails", a.withPayKey(payKey))
}

// SetPaymentOptions sets display and shipping options of a created payment.
func (a *AdaptivePayments) SetPaymentOptions(ctx context.Context, payKey string, data entity.Options) entity.Outcome {
	return a.client.Execute(ctx, "SetPaymentOptions", data.With(a.withPayKey(payKey)))
}

func (a *AdaptivePayments) GetPaymentOptions(ctx context.Context, payKey string) entity.Outcome {
	return a.client.Execute(ctx, "GetPaymentOptions", a.withPayKey(payKey))
}

func (a *AdaptivePayments) Refund(ctx context.Context, payKey string) entity.Outcome {
	return a.client.Execute(ctx, "Refund", a.withPayKey(payKey))
}

// RedirectURL is the page where the sender approves the payment of payKey.
func (a *AdaptivePayments) RedirectURL(payKey string) string {
	return fmt.Sprintf("%s?cmd=_ap-payment&paykey=%s", a.client.conf.GatewayUrl, payKey)
}

func (a *AdaptivePayments) VerifyIPN(ctx context.Context, notification *entity.Payload) entity.Outcome {
	return a.client.VerifyIPN(ctx, notification)
}

func (a *AdaptivePayments) withPayKey(payKey string) entity.Options {
	options := a.envelope()
	options["payKey"] = payKey
	return options
}

func (a *AdaptivePayments) envelope() entity.Options {
	return entity.Options{"requestEnvelope.errorLanguage": a.client.conf.Locale}
}
