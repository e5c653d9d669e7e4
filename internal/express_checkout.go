package internal

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"paygate/entity"
)

// ExpressCheckout exposes the classic express checkout operations.
type ExpressCheckout struct {
	client *Client
}

func NewExpressCheckout(client *Client) (*ExpressCheckout, error) {
	if client.conf.Provider != entity.ProviderExpressCheckout {
		return nil, configurationError("express checkout", errors.Wrapf(ErrUnsupportedProvider, "client provider %s", client.conf.Provider))
	}
	return &ExpressCheckout{client: client}, nil
}

// SetExpressCheckout starts a checkout for cart. On success the outcome
// carries paypal_link, the URL the buyer is redirected to.
func (e *ExpressCheckout) SetExpressCheckout(ctx context.Context, cart *entity.Cart, subscription bool) entity.Outcome {
	options, err := e.cartOptions(cart)
	if err != nil {
		return invalidRequest("SetExpressCheckout", err)
	}
	options["RETURNURL"] = cart.ReturnUrl
	options["CANCELURL"] = cart.CancelUrl
	options["LOCALECODE"] = e.client.conf.Locale
	if subscription {
		description := cart.SubscriptionDescription
		if description == "" {
			description = cart.InvoiceDescription
		}
		options["L_BILLINGTYPE0"] = "RecurringPayments"
		options["L_BILLINGAGREEMENTDESCRIPTION0"] = description
	}

	outcome := e.client.Execute(ctx, "SetExpressCheckout", options)
	if token := outcome.Get("TOKEN"); !outcome.IsError() && outcome.Acknowledged() && token != "" {
		outcome.Fields["paypal_link"] = fmt.Sprintf("%s?cmd=_express-checkout&token=%s", e.client.conf.GatewayUrl, token)
	}
	return outcome
}

func (e *ExpressCheckout) GetExpressCheckoutDetails(ctx context.Context, token string) entity.Outcome {
	return e.client.Execute(ctx, "GetExpressCheckoutDetails", entity.Options{"TOKEN": token})
}

// DoExpressCheckoutPayment completes the checkout approved by payerId.
func (e *ExpressCheckout) DoExpressCheckoutPayment(ctx context.Context, cart *entity.Cart, token, payerId string) entity.Outcome {
	options, err := e.cartOptions(cart)
	if err != nil {
		return invalidRequest("DoExpressCheckoutPayment", err)
	}
	options["TOKEN"] = token
	options["PAYERID"] = payerId
	return e.client.Execute(ctx, "DoExpressCheckoutPayment", options)
}

func (e *ExpressCheckout) DoAuthorization(ctx context.Context, transactionId, amount string) entity.Outcome {
	return e.client.Execute(ctx, "DoAuthorization", entity.Options{
		"TRANSACTIONID": transactionId,
		"AMT":           amount,
		"CURRENCYCODE":  e.client.conf.Currency,
	})
}

// DoCapture captures amount of an authorization. The authorization stays
// open for further captures unless complete is set.
func (e *ExpressCheckout) DoCapture(ctx context.Context, authorizationId, amount string, complete bool) entity.Outcome {
	completeType := "NotComplete"
	if complete {
		completeType = "Complete"
	}
	return e.client.Execute(ctx, "DoCapture", entity.Options{
		"AUTHORIZATIONID": authorizationId,
		"AMT":             amount,
		"COMPLETETYPE":    completeType,
		"CURRENCYCODE":    e.client.conf.Currency,
	})
}

func (e *ExpressCheckout) DoReAuthorization(ctx context.Context, authorizationId, amount string) entity.Outcome {
	return e.client.Execute(ctx, "DoReAuthorization", entity.Options{
		"AUTHORIZATIONID": authorizationId,
		"AMT":             amount,
		"CURRENCYCODE":    e.client.conf.Currency,
	})
}

func (e *ExpressCheckout) DoVoid(ctx context.Context, authorizationId string) entity.Outcome {
	return e.client.Execute(ctx, "DoVoid", entity.Options{"AUTHORIZATIONID": authorizationId})
}

// RefundTransaction refunds amount of a transaction, or all of it when amount
// is empty.
func (e *ExpressCheckout) RefundTransaction(ctx context.Context, transactionId, amount string) entity.Outcome {
	options := entity.Options{
		"TRANSACTIONID": transactionId,
		"REFUNDTYPE":    "Full",
	}
	if amount != "" {
		options["REFUNDTYPE"] = "Partial"
		options["AMT"] = amount
		options["CURRENCYCODE"] = e.client.conf.Currency
	}
	return e.client.Execute(ctx, "RefundTransaction", options)
}

func (e *ExpressCheckout) GetTransactionDetails(ctx context.Context, transactionId string) entity.Outcome {
	return e.client.Execute(ctx, "GetTransactionDetails", entity.Options{"TRANSACTIONID": transactionId})
}

func (e *ExpressCheckout) CreateBillingAgreement(ctx context.Context, token string) entity.Outcome {
	return e.client.Execute(ctx, "CreateBillingAgreement", entity.Options{"TOKEN": token})
}

// CreateRecurringPaymentsProfile creates a profile from data (PROFILESTARTDATE,
// BILLINGPERIOD, AMT, ...) for an approved checkout token.
func (e *ExpressCheckout) CreateRecurringPaymentsProfile(ctx context.Context, data entity.Options, token string) entity.Outcome {
	return e.client.Execute(ctx, "CreateRecurringPaymentsProfile", data.With(entity.Options{"TOKEN": token}))
}

func (e *ExpressCheckout) GetRecurringPaymentsProfileDetails(ctx context.Context, profileId string) entity.Outcome {
	return e.client.Execute(ctx, "GetRecurringPaymentsProfileDetails", entity.Options{"PROFILEID": profileId})
}

func (e *ExpressCheckout) UpdateRecurringPaymentsProfile(ctx context.Context, data entity.Options, profileId string) entity.Outcome {
	return e.client.Execute(ctx, "UpdateRecurringPaymentsProfile", data.With(entity.Options{"PROFILEID": profileId}))
}

func (e *ExpressCheckout) CancelRecurringPaymentsProfile(ctx context.Context, profileId string) entity.Outcome {
	return e.manageProfileStatus(ctx, profileId, "Cancel")
}

func (e *ExpressCheckout) SuspendRecurringPaymentsProfile(ctx context.Context, profileId string) entity.Outcome {
	return e.manageProfileStatus(ctx, profileId, "Suspend")
}

func (e *ExpressCheckout) ReactivateRecurringPaymentsProfile(ctx context.Context, profileId string) entity.Outcome {
	return e.manageProfileStatus(ctx, profileId, "Reactivate")
}

func (e *ExpressCheckout) manageProfileStatus(ctx context.Context, profileId, action string) entity.Outcome {
	return e.client.Execute(ctx, "ManageRecurringPaymentsProfileStatus", entity.Options{
		"PROFILEID": profileId,
		"ACTION":    action,
	})
}

func (e *ExpressCheckout) VerifyIPN(ctx context.Context, notification *entity.Payload) entity.Outcome {
	return e.client.VerifyIPN(ctx, notification)
}

func (e *ExpressCheckout) cartOptions(cart *entity.Cart) (entity.Options, error) {
	if cart == nil {
		return nil, errors.New("cart is empty")
	}
	currency := e.client.conf.Currency
	options := entity.Options{}
	for i, item := range cart.Items {
		n := strconv.Itoa(i)
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		options["L_PAYMENTREQUEST_0_NAME"+n] = item.Name
		options["L_PAYMENTREQUEST_0_AMT"+n] = item.Price
		options["L_PAYMENTREQUEST_0_QTY"+n] = strconv.Itoa(quantity)
		if item.Number != "" {
			options["L_PAYMENTREQUEST_0_NUMBER"+n] = item.Number
		}
		if item.Description != "" {
			options["L_PAYMENTREQUEST_0_DESC"+n] = item.Description
		}
	}

	total, err := sumAmounts(currency, cart.Total, cart.Shipping, cart.Tax)
	if err != nil {
		return nil, err
	}
	options["PAYMENTREQUEST_0_ITEMAMT"] = cart.Total
	options["PAYMENTREQUEST_0_AMT"] = total
	if cart.Shipping != "" {
		options["PAYMENTREQUEST_0_SHIPPINGAMT"] = cart.Shipping
	}
	if cart.Tax != "" {
		options["PAYMENTREQUEST_0_TAXAMT"] = cart.Tax
	}
	options["PAYMENTREQUEST_0_PAYMENTACTION"] = e.client.conf.PaymentAction
	options["PAYMENTREQUEST_0_CURRENCYCODE"] = currency
	options["PAYMENTREQUEST_0_DESC"] = cart.InvoiceDescription
	options["PAYMENTREQUEST_0_INVNUM"] = cart.InvoiceId
	if e.client.conf.NotifyUrl != "" {
		options["PAYMENTREQUEST_0_NOTIFYURL"] = e.client.conf.NotifyUrl
	}
	return options, nil
}

// zeroDecimalCurrencies do not accept fractional amounts.
var zeroDecimalCurrencies = map[string]bool{"HUF": true, "JPY": true, "TWD": true}

// sumAmounts adds decimal amounts, skipping empty ones, and formats the
// result for currency.
func sumAmounts(currency string, amounts ...string) (string, error) {
	var total float64
	for _, amount := range amounts {
		if amount == "" {
			continue
		}
		value, err := strconv.ParseFloat(amount, 64)
		if err != nil {
			return "", errors.Wrapf(err, "amount %q", amount)
		}
		total += value
	}
	if zeroDecimalCurrencies[currency] {
		return strconv.FormatFloat(total, 'f', 0, 64), nil
	}
	return strconv.FormatFloat(total, 'f', 2, 64), nil
}

// invalidRequest reports a request rejected before anything was sent.
func invalidRequest(operation string, err error) entity.Outcome {
	e := newError(KindUnknown, operation, errors.WithStack(err))
	return entity.Outcome{Type: entity.OutcomeError, Message: e.Trace(), Err: e}
}
