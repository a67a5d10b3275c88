package authorizenet

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

type rule struct {
	ok   func(string) bool
	text string
}

func maxLen(n int, text string) rule {
	return rule{
		ok:   func(v string) bool { l := utf8.RuneCountInString(v); return l > 0 && l <= n },
		text: text,
	}
}

func pattern(expr, text string) rule {
	re := regexp.MustCompile(expr)
	return rule{ok: re.MatchString, text: text}
}

func oneOf(text string, values ...string) rule {
	return rule{
		ok: func(v string) bool {
			for _, allowed := range values {
				if v == allowed {
					return true
				}
			}
			return false
		},
		text: text,
	}
}

const (
	amountExpr  = `^[0-9]+(\.[0-9]{1,4})?$`
	numericExpr = `^[0-9]+$`
)

const (
	TransAuthOnly         = "profileTransAuthOnly"
	TransAuthCapture      = "profileTransAuthCapture"
	TransCaptureOnly      = "profileTransCaptureOnly"
	TransPriorAuthCapture = "profileTransPriorAuthCapture"
	TransRefund           = "profileTransRefund"
	TransVoid             = "profileTransVoid"
)

var (
	phoneRule   = pattern(`^[0-9()+\- .]{1,25}$`, "up to 25 digits (no letters). Ex. (123)123-1234")
	stateRule   = pattern(`(?i)^[a-z]{2}$`, "a valid two-character state code")
	booleanRule = oneOf("(true or false)", "true", "false", "TRUE", "FALSE", "True", "False")
)

// fieldRules is every field a CIMRequest accepts and the constraint it must satisfy.
var fieldRules = map[string]rule{
	"refId": maxLen(20, "up to 20 characters"),

	"merchantCustomerId": maxLen(20, "up to 20 characters in length"),
	"description":        maxLen(255, "up to 255 characters in length"),
	"email":              maxLen(255, "up to 255 characters in length"),
	"customerType":       pattern(`(?i)^(individual|business)$`, "(individual or business)"),

	"customerProfileId":         pattern(numericExpr, "numeric"),
	"customerPaymentProfileId":  pattern(numericExpr, "numeric"),
	"customerAddressId":         pattern(numericExpr, "numeric"),
	"customerShippingAddressId": pattern(numericExpr, "numeric"),
	"transId":                   pattern(numericExpr, "numeric"),

	"paymentType":    oneOf("(bankAccount or creditCard)", "creditCard", "creditcard", "bankAccount", "echeck"),
	"cardNumber":     pattern(`^[0-9]{13,16}$`, "13 to 16 digits"),
	"expirationDate": pattern(`^[0-9]{4}-[0-9]{2}$`, "YYYY-MM"),
	"cardCode":       pattern(`^[0-9]{3,4}$`, "3 to 4 digits"),
	"accountType":    oneOf("(checking, savings or businessChecking)", "checking", "savings", "businessChecking"),
	"routingNumber":  pattern(`^[0-9]{9}$`, "9 digits"),
	"accountNumber":  pattern(`^[0-9]{5,17}$`, "5 to 17 digits"),
	"nameOnAccount":  maxLen(22, "up to 22 characters in length"),
	"echeckType":     oneOf("(CCD, PPD, TEL or WEB)", "CCD", "PPD", "TEL", "WEB"),
	"bankName":       maxLen(50, "up to 50 characters in length"),
	"validationMode": oneOf("(none, testMode or liveMode)", "none", "testMode", "liveMode"),

	"transactionType": oneOf(
		"("+strings.Join([]string{TransAuthOnly, TransAuthCapture, TransCaptureOnly, TransPriorAuthCapture, TransRefund, TransVoid}, ", ")+")",
		TransAuthOnly, TransAuthCapture, TransCaptureOnly, TransPriorAuthCapture, TransRefund, TransVoid,
	),
	"transaction_amount":          pattern(amountExpr, "up to 4 digits with a decimal (no dollar symbol)"),
	"tax_amount":                  pattern(amountExpr, "up to 4 digits with a decimal point (no dollar symbol)"),
	"tax_name":                    maxLen(31, "up to 31 characters"),
	"tax_description":             maxLen(255, "up to 255 characters"),
	"shipping_amount":             pattern(amountExpr, "up to 4 digits with a decimal point. (no dollar symbol)"),
	"shipping_name":               maxLen(31, "up to 31 characters"),
	"shipping_description":        maxLen(255, "up to 255 characters"),
	"duty_amount":                 pattern(amountExpr, "up to 4 digits with a decimal point. (no dollar symbol)"),
	"duty_name":                   maxLen(31, "up to 31 characters"),
	"duty_description":            maxLen(255, "up to 255 characters"),
	"order_invoiceNumber":         maxLen(20, "up to 20 characters (no symbols)"),
	"order_description":           maxLen(255, "up to 255 characters (no symbols)"),
	"order_purchaseOrderNumber":   maxLen(25, "up to 25 characters (no symbols)"),
	"transactionTaxExempt":        booleanRule,
	"transactionRecurringBilling": booleanRule,
	"transactionCardCode":         pattern(`^[0-9]{3,4}$`, "3 to 4 digits"),
	"transactionApprovalCode":     rule{ok: func(v string) bool { return len(v) == 6 }, text: "6 characters"},
}

func init() {
	for _, prefix := range []string{"billTo_", "shipTo_"} {
		fieldRules[prefix+"firstName"] = maxLen(50, "up to 50 characters (no symbols)")
		fieldRules[prefix+"lastName"] = maxLen(50, "up to 50 characters (no symbols)")
		fieldRules[prefix+"company"] = maxLen(50, "up to 50 characters (no symbols)")
		fieldRules[prefix+"address"] = maxLen(60, "up to 60 characters (no symbols)")
		fieldRules[prefix+"city"] = maxLen(40, "up to 40 characters (no symbols)")
		fieldRules[prefix+"state"] = stateRule
		fieldRules[prefix+"zip"] = maxLen(20, "up to 20 characters (no symbols)")
		fieldRules[prefix+"country"] = maxLen(60, "up to 60 characters (no symbols)")
		fieldRules[prefix+"phoneNumber"] = phoneRule
		fieldRules[prefix+"faxNumber"] = phoneRule
	}
}
