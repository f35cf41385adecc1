package ledger

import (
	"fmt"

	"easy_pay/internal/domain"

	"github.com/shopspring/decimal"
)

func successMessage(kind domain.TxType) string {
	switch kind {
	case domain.TxCashOut:
		return "Cash out successful"
	case domain.TxCashIn:
		return "Cash in successful"
	default:
		return "Send money successful"
	}
}

func receivedMessage(amount decimal.Decimal, from, id string) string {
	return fmt.Sprintf("Cash in: you received %s Tk from %s. TrxID %s", amount, from, id)
}

func sentMessage(amount, fee decimal.Decimal, to, id string) string {
	return fmt.Sprintf("You sent %s Tk to %s. Fee %s Tk. TrxID %s", amount, to, fee, id)
}

func feeMessage(fee decimal.Decimal, from, id string) string {
	return fmt.Sprintf("You received a fee of %s Tk from %s. TrxID %s", fee, from, id)
}

func agentCashOutMessage(amount, commission decimal.Decimal, from, id string) string {
	return fmt.Sprintf("Cash out of %s Tk received from %s. Your commission %s Tk. TrxID %s", amount, from, commission, id)
}

func cashOutMessage(amount, fee decimal.Decimal, agent, id string) string {
	return fmt.Sprintf("You cashed out %s Tk through agent %s. Fee %s Tk. TrxID %s", amount, agent, fee, id)
}

func cashInMessage(amount decimal.Decimal, agent, id string) string {
	return fmt.Sprintf("Cash in: you received %s Tk from agent %s. TrxID %s", amount, agent, id)
}

func agentCashInMessage(amount decimal.Decimal, to, id string) string {
	return fmt.Sprintf("You cashed in %s Tk to %s. TrxID %s", amount, to, id)
}
