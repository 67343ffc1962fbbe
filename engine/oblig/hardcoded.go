package oblig

import (
	"fmt"

	"github.com/nathoo/actioncore/engine/reqs"
	"github.com/nathoo/actioncore/types"
)

func actor(r types.Requirement) Alternative  { return Alternative{Req: r} }
func target(r types.Requirement) Alternative { return Alternative{Req: r, IsTarget: true} }

// entry is one row of a built in obligatory requirement table.
type entry struct {
	alts    []Alternative
	message string
	results []types.ActionResult
	subs    []types.SubResult
}

// hardCoded does not depend on the ruleset. Rows are sorted by requirement.
var hardCoded = []entry{
	{
		alts:    []Alternative{actor(reqs.Not(types.ReqDiplRel, "Foreign"))},
		message: "All action enablers for %s must require a foreign target.",
		results: []types.ActionResult{
			types.ResultEstablishEmbassy, types.ResultInvestigateCity, types.ResultStealGold,
			types.ResultStealMaps, types.ResultStealTech, types.ResultTargetedStealTech,
			types.ResultInciteCity, types.ResultBribeUnit, types.ResultCaptureUnits,
			types.ResultConquerCity,
		},
	},
	{
		alts: []Alternative{
			actor(reqs.Not(types.ReqDiplRel, "Foreign")),
			target(reqs.Req(types.ReqCityTile, "Claimed")),
		},
		message: "All action enablers for %s must require a non domestic target.",
		results: []types.ActionResult{types.ResultParadropConquer},
	},
	{
		alts:    []Alternative{actor(reqs.Req(types.ReqDiplRel, "Has real embassy"))},
		message: "All action enablers for %s must require the absence of a real embassy.",
		results: []types.ActionResult{types.ResultEstablishEmbassy},
	},
	{
		alts:    []Alternative{actor(reqs.Req(types.ReqActivity, "Fortified"))},
		message: "All action enablers for %s must require that the actor unit isn't already fortified.",
		results: []types.ActionResult{types.ResultFortify},
	},
	{
		alts:    []Alternative{actor(reqs.Req(types.ReqDiplRel, "Foreign"))},
		message: "All action enablers for %s must require a domestic target.",
		results: []types.ActionResult{types.ResultUpgradeUnit},
	},
	transportDiplomacy(types.DiplArmistice),
	transportDiplomacy(types.DiplWar),
	transportDiplomacy(types.DiplCeasefire),
	transportDiplomacy(types.DiplPeace),
	transportDiplomacy(types.DiplNoContact),
	{
		alts:    []Alternative{target(reqs.Req(types.ReqTerrainFlag, "NoCities"))},
		message: "All action enablers for %s must require that the target doesn't have the NoCities terrain flag.",
		results: []types.ActionResult{types.ResultFoundCity},
	},
	{
		alts:    []Alternative{actor(reqs.Not(types.ReqUnitState, "HasHomeCity"))},
		message: "All action enablers for %s must require that the actor has a home city.",
		results: []types.ActionResult{types.ResultTradeRoute, types.ResultMarketplace},
	},
	{
		alts: []Alternative{
			actor(reqs.Not(types.ReqUnitFlag, "NonMil")),
			actor(reqs.Req(types.ReqDiplRel, types.DiplPeace)),
			target(reqs.Req(types.ReqCityTile, "Claimed")),
		},
		message: "All action enablers for %s must require that the actor has the NonMil utype flag " +
			"or that the target tile is unclaimed or that the diplomatic relation to the target tile owner isn't peace.",
		results: []types.ActionResult{types.ResultParadrop, types.ResultParadropConquer},
	},
	{
		alts:    []Alternative{actor(reqs.Req(types.ReqUnitFlag, "NonMil"))},
		message: "All action enablers for %s must require that the actor doesn't have the NonMil utype flag.",
		results: []types.ActionResult{types.ResultAttack, types.ResultConquerCity},
	},
	{
		alts: []Alternative{
			actor(reqs.Req(types.ReqUnitFlag, "NonMil")),
			target(reqs.Req(types.ReqCityTile, "Center")),
		},
		message: "All action enablers for %s must require no city at the target tile or that the actor doesn't have the NonMil utype flag.",
		results: []types.ActionResult{types.ResultParadropConquer},
	},
	{
		alts:    []Alternative{actor(reqs.Not(types.ReqUnitClassFlag, "CanOccupyCity"))},
		message: "All action enablers for %s must require that the actor has the CanOccupyCity uclass flag.",
		results: []types.ActionResult{types.ResultConquerCity},
	},
	{
		alts: []Alternative{
			actor(reqs.Not(types.ReqUnitClassFlag, "CanOccupyCity")),
			target(reqs.Req(types.ReqCityTile, "Center")),
		},
		message: "All action enablers for %s must require no city at the target tile or that the actor has the CanOccupyCity uclass flag.",
		results: []types.ActionResult{types.ResultParadropConquer},
	},
	{
		alts:    []Alternative{actor(reqs.Not(types.ReqDiplRel, types.DiplWar))},
		message: "All action enablers for %s must require that the actor is at war with the target.",
		results: []types.ActionResult{types.ResultConquerCity},
	},
	{
		alts: []Alternative{
			actor(reqs.Not(types.ReqDiplRel, types.DiplWar)),
			target(reqs.Req(types.ReqCityTile, "Center")),
		},
		message: "All action enablers for %s must require no city at the target tile or that the actor is at war with the target.",
		results: []types.ActionResult{types.ResultParadropConquer},
	},
	{
		alts:    []Alternative{actor(reqs.Not(types.ReqMinMoves, "1"))},
		message: "All action enablers for %s must require that the actor has a movement point left.",
		results: []types.ActionResult{
			types.ResultConquerCity, types.ResultTransportDisembark, types.ResultTransportEmbark,
			types.ResultUnitMove,
		},
	},
	{
		alts:    []Alternative{target(reqs.Not(types.ReqMaxTileUnits, "0"))},
		message: "All action enablers for %s must require that the target city is empty.",
		results: []types.ActionResult{types.ResultConquerCity},
	},
	{
		alts:    []Alternative{actor(reqs.Req(types.ReqUnitState, "Transporting"))},
		message: "All action enablers for %s must require that the actor isn't transporting another unit.",
		results: []types.ActionResult{types.ResultParadrop, types.ResultParadropConquer, types.ResultAirlift},
	},
	{
		alts:    []Alternative{target(reqs.Req(types.ReqUnitState, "Transporting"))},
		message: "All action enablers for %s must require that the target isn't transporting another unit.",
		results: []types.ActionResult{types.ResultCaptureUnits},
	},
	{
		alts:    []Alternative{actor(reqs.Not(types.ReqUnitState, "Transported"))},
		message: "All action enablers for %s must require that the actor is transported.",
		results: []types.ActionResult{types.ResultTransportDisembark},
	},
	{
		alts:    []Alternative{actor(reqs.Not(types.ReqUnitState, "Transporting"))},
		message: "All action enablers for %s must require that the actor is transporting a unit.",
		results: []types.ActionResult{types.ResultTransportUnload},
	},
	{
		alts:    []Alternative{target(reqs.Not(types.ReqUnitState, "Transported"))},
		message: "All action enablers for %s must require that the target is transported.",
		results: []types.ActionResult{types.ResultTransportUnload},
	},
	{
		alts:    []Alternative{target(reqs.Not(types.ReqUnitState, "OnLivableTile"))},
		message: "All action enablers for %s must require that the target is on a livable tile.",
		results: []types.ActionResult{types.ResultTransportUnload},
	},
	{
		alts:    []Alternative{actor(reqs.Req(types.ReqUnitState, "Transported"))},
		message: "All action enablers for %s must require that the actor isn't transported.",
		results: []types.ActionResult{types.ResultUnitMove},
	},
	{
		alts:    []Alternative{actor(reqs.Not(types.ReqCityTile, "Center"))},
		message: "All action enablers for %s must require that the actor unit is in a city.",
		results: []types.ActionResult{types.ResultAirlift},
	},
	{
		alts:    []Alternative{actor(quiet(reqs.Req(types.ReqUnitClassFlag, "HutFrighten")))},
		message: "All action enablers for %s must require that the actor unit doesn't have the HutFrighten unit class flag.",
		subs:    []types.SubResult{types.SubResultHutEnter},
	},
	{
		alts:    []Alternative{actor(quiet(reqs.Not(types.ReqUnitClassFlag, "HutFrighten")))},
		message: "All action enablers for %s must require that the actor unit has the HutFrighten unit class flag.",
		subs:    []types.SubResult{types.SubResultHutFrighten},
	},
}

func transportDiplomacy(state string) entry {
	return entry{
		alts:    []Alternative{actor(reqs.Req(types.ReqDiplRel, state))},
		message: "All action enablers for %s must require a domestic or allied target.",
		results: []types.ActionResult{types.ResultTransportEmbark, types.ResultTransportBoard},
	}
}

func quiet(r types.Requirement) types.Requirement {
	r.Quiet = true
	return r
}

func register(r *Registry, rows []entry) error {
	for _, e := range rows {
		id, err := r.NewGroup(e.alts...)
		if err != nil {
			return err
		}
		if len(e.results) > 0 {
			if err := r.Register(id, e.message, e.results); err != nil {
				return fmt.Errorf("register %q: %w", e.message, err)
			}
		}
		if len(e.subs) > 0 {
			if err := r.RegisterSubResult(id, e.message, e.subs); err != nil {
				return fmt.Errorf("register %q: %w", e.message, err)
			}
		}
	}
	return nil
}

// HardCoded registers the obligatory requirements that hold for every
// ruleset.
func HardCoded(r *Registry) error {
	return register(r, hardCoded)
}

// RulesetDependent registers the obligatory requirements derived from
// ruleset data: animal barbarians can never conquer a city.
func RulesetDependent(r *Registry, nations []types.Nation) error {
	var rows []entry
	for _, n := range nations {
		if n.Barbarian != "animal" {
			continue
		}
		animal := types.Requirement{Kind: types.ReqNation, Range: types.RangePlayer, Present: true, Quiet: true, Value: n.ID}
		rows = append(rows,
			entry{
				alts:    []Alternative{actor(animal)},
				message: "All action enablers for %s must require a non animal player actor.",
				results: []types.ActionResult{types.ResultConquerCity},
			},
			entry{
				alts:    []Alternative{actor(animal), target(reqs.Req(types.ReqCityTile, "Center"))},
				message: "All action enablers for %s must require no city at the target tile or a non animal player actor.",
				results: []types.ActionResult{types.ResultParadropConquer},
			},
		)
	}
	return register(r, rows)
}
