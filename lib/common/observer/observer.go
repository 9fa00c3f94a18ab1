package observer

import (
	"github.com/GianlucaGuarini/go-observable"
)

var ProposalObserver = observable.New()
var ReferendumObserver = observable.New()
var StakeAccountObserver = observable.New()
