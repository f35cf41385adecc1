package ledger

import (
	"sort"

	"easy_pay/internal/domain"

	"github.com/shopspring/decimal"
)

// posting is the set of balance deltas and feed entries a transfer produces
type posting struct {
	accounts map[uint]*domain.User
	deltas   map[uint]decimal.Decimal
	notes    []domain.Notification
	adminFee decimal.Decimal
	agentFee decimal.Decimal
}

func (p *posting) add(u *domain.User, delta decimal.Decimal) {
	p.accounts[u.ID] = u
	p.deltas[u.ID] = p.deltas[u.ID].Add(delta)
}

func (p *posting) notify(u *domain.User, msg string) {
	p.notes = append(p.notes, domain.Notification{UserID: u.ID, Msg: msg})
}

// newPosting computes the effect of a validated transfer. admin may be nil for cash-in and fee-less sends.
func newPosting(kind domain.TxType, req *TransferRequest, sender, receiver, admin *domain.User) *posting {
	p := &posting{
		accounts: map[uint]*domain.User{},
		deltas:   map[uint]decimal.Decimal{},
		adminFee: decimal.Zero,
		agentFee: decimal.Zero,
	}
	amount, fee, id := req.Amount, req.Fee, req.TransactionID

	switch kind {
	case domain.TxSend:
		p.add(sender, amount.Add(fee).Neg())
		p.add(receiver, amount)
		p.notify(receiver, receivedMessage(amount, sender.Number, id))
		p.notify(sender, sentMessage(amount, fee, receiver.Number, id))
		if fee.IsPositive() {
			p.adminFee = fee
			p.add(admin, fee)
			p.notify(admin, feeMessage(fee, sender.Number, id))
		}
	case domain.TxCashOut:
		p.agentFee, p.adminFee = domain.SplitCashOutFee(fee)
		p.add(receiver, amount.Add(p.agentFee))
		p.add(sender, amount.Add(fee).Neg())
		p.add(admin, p.adminFee)
		p.notify(receiver, agentCashOutMessage(amount, p.agentFee, sender.Number, id))
		p.notify(sender, cashOutMessage(amount, fee, receiver.Number, id))
		p.notify(admin, feeMessage(p.adminFee, sender.Number, id))
	case domain.TxCashIn:
		p.add(receiver, amount)
		p.add(sender, amount.Neg())
		p.notify(receiver, cashInMessage(amount, sender.Number, id))
		p.notify(sender, agentCashInMessage(amount, receiver.Number, id))
	}
	return p
}

// emails lists the accounts touched, in id order
func (p *posting) emails() []string {
	ids := make([]uint, 0, len(p.accounts))
	for id := range p.accounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = p.accounts[id].Email
	}
	return out
}
