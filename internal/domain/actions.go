package domain

type ActionKind string

const (
	ActionAccept         ActionKind = "accept"
	ActionConfirmPayment ActionKind = "confirm_payment"
	ActionRejectPayment  ActionKind = "reject_payment"
	ActionStart          ActionKind = "start"
	ActionReady          ActionKind = "ready"
	ActionComplete       ActionKind = "complete"
	ActionCancel         ActionKind = "cancel"
	ActionHide           ActionKind = "hide"
)

// Action is one admin operation offered for an order in its current state.
// Hide carries no target: it only removes the order from the admin view.
type Action struct {
	Kind   ActionKind `json:"kind"`
	Target Status     `json:"target,omitempty"`
	Label  string     `json:"label"`
}

var forwardAction = map[Status]Action{
	StatusNew:        {Kind: ActionAccept, Target: StatusAccepted, Label: "✅ Принять"},
	StatusAccepted:   {Kind: ActionStart, Target: StatusInProgress, Label: "▶️ В работу"},
	StatusInProgress: {Kind: ActionReady, Target: StatusReady, Label: "🍽 Готово"},
	StatusReady:      {Kind: ActionComplete, Target: StatusCompleted, Label: "✔️ Завершить"},
}

// ActionsFor returns the admin actions offered for the order. A NEW order
// with an outstanding card-payment check offers only the verification
// actions; the generic accept is suppressed so unverified card payments
// cannot be accepted through the regular path.
func ActionsFor(o *Order) []Action {
	if o.Status.Terminal() {
		return []Action{{Kind: ActionHide, Label: "🙈 Скрыть"}}
	}

	if o.Status == StatusNew && o.NeedsPaymentCheck {
		return []Action{
			{Kind: ActionConfirmPayment, Target: StatusAccepted, Label: "✅ Подтвердить оплату"},
			{Kind: ActionRejectPayment, Target: StatusPaymentFailed, Label: "❌ Отклонить оплату"},
			{Kind: ActionCancel, Target: StatusCancelled, Label: "✖️ Отменить заказ"},
		}
	}

	actions := []Action{}
	if next, ok := forwardAction[o.Status]; ok {
		actions = append(actions, next)
	}
	actions = append(actions, Action{Kind: ActionCancel, Target: StatusCancelled, Label: "✖️ Отменить"})
	return actions
}
