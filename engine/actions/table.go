package actions

import "github.com/nathoo/actioncore/types"

var table = []Action{
	{ID: types.ActionEstablishEmbassy, Result: types.ResultEstablishEmbassy, TargetKind: types.TargetCity,
		MaxDistance: 1, RuleName: "Establish Embassy"},
	{ID: types.ActionEstablishEmbassyStay, Result: types.ResultEstablishEmbassy, TargetKind: types.TargetCity,
		MaxDistance: 1, RuleName: "Establish Embassy Stay", UIName: "Establish Embassy (and stay)"},
	{ID: types.ActionSpyInvestigateCity, Result: types.ResultInvestigateCity, TargetKind: types.TargetCity,
		Hostile: true, MaxDistance: 1, RuleName: "Investigate City"},
	{ID: types.ActionInvestigateCitySpend, Result: types.ResultInvestigateCity, TargetKind: types.TargetCity,
		Hostile: true, MaxDistance: 1, RuleName: "Investigate City Spend Unit"},
	{ID: types.ActionSpyPoison, Result: types.ResultPoisonCity, TargetKind: types.TargetCity,
		Hostile: true, MaxDistance: 1, RuleName: "Poison City"},
	{ID: types.ActionSpyStealGold, Result: types.ResultStealGold, TargetKind: types.TargetCity,
		Hostile: true, MaxDistance: 1, RuleName: "Steal Gold"},
	{ID: types.ActionSpySabotageCity, Result: types.ResultSabotageCity, TargetKind: types.TargetCity,
		Hostile: true, MaxDistance: 1, RuleName: "Sabotage City"},
	{ID: types.ActionSpyTargetedSabotageCity, Result: types.ResultTargetedSabotageCity, TargetKind: types.TargetCity,
		Hostile: true, RequiresDetails: true, MaxDistance: 1, RuleName: "Targeted Sabotage City"},
	{ID: types.ActionSpyStealTech, Result: types.ResultStealTech, TargetKind: types.TargetCity,
		Hostile: true, MaxDistance: 1, RuleName: "Steal Tech"},
	{ID: types.ActionSpyTargetedStealTech, Result: types.ResultTargetedStealTech, TargetKind: types.TargetCity,
		Hostile: true, RequiresDetails: true, MaxDistance: 1, RuleName: "Targeted Steal Tech"},
	{ID: types.ActionSpyInciteCity, Result: types.ResultInciteCity, TargetKind: types.TargetCity,
		Hostile: true, MaxDistance: 1, RuleName: "Incite City"},
	{ID: types.ActionTradeRoute, Result: types.ResultTradeRoute, TargetKind: types.TargetCity,
		MaxDistance: 1, RuleName: "Establish Trade Route"},
	{ID: types.ActionMarketplace, Result: types.ResultMarketplace, TargetKind: types.TargetCity,
		MaxDistance: 1, RuleName: "Enter Marketplace"},
	{ID: types.ActionHelpWonder, Result: types.ResultHelpWonder, TargetKind: types.TargetCity,
		MaxDistance: 1, RuleName: "Help Wonder"},
	{ID: types.ActionSpyBribeUnit, Result: types.ResultBribeUnit, TargetKind: types.TargetUnit,
		Hostile: true, MaxDistance: 1, RuleName: "Bribe Unit"},
	{ID: types.ActionSpySabotageUnit, Result: types.ResultSabotageUnit, TargetKind: types.TargetUnit,
		Hostile: true, MaxDistance: 1, RuleName: "Sabotage Unit"},
	// A domestic unit on the target tile makes capture illegal, so it is
	// always done from a neighbouring tile.
	{ID: types.ActionCaptureUnits, Result: types.ResultCaptureUnits, TargetKind: types.TargetUnits,
		Hostile: true, MinDistance: 1, MaxDistance: 1, RuleName: "Capture Units"},
	{ID: types.ActionFoundCity, Result: types.ResultFoundCity, TargetKind: types.TargetTile,
		RarePopUp: true, RuleName: "Found City"},
	{ID: types.ActionJoinCity, Result: types.ResultJoinCity, TargetKind: types.TargetCity,
		RarePopUp: true, MaxDistance: 1, RuleName: "Join City"},
	{ID: types.ActionStealMaps, Result: types.ResultStealMaps, TargetKind: types.TargetCity,
		Hostile: true, MaxDistance: 1, RuleName: "Steal Maps"},
	{ID: types.ActionBombard, Result: types.ResultBombard, TargetKind: types.TargetUnits,
		Hostile: true, MinDistance: 1, MaxDistance: 1, RuleName: "Bombard"},
	{ID: types.ActionSpyNuke, Result: types.ResultSpyNuke, TargetKind: types.TargetCity,
		Hostile: true, MaxDistance: 1, RuleName: "Suitcase Nuke"},
	{ID: types.ActionNuke, Result: types.ResultNuke, TargetKind: types.TargetTile,
		Hostile: true, RarePopUp: true, MaxDistance: 1, RuleName: "Explode Nuclear"},
	{ID: types.ActionDestroyCity, Result: types.ResultDestroyCity, TargetKind: types.TargetCity,
		Hostile: true, MaxDistance: 1, RuleName: "Destroy City"},
	{ID: types.ActionExpelUnit, Result: types.ResultExpelUnit, TargetKind: types.TargetUnit,
		Hostile: true, MaxDistance: 1, RuleName: "Expel Unit"},
	{ID: types.ActionRecycleUnit, Result: types.ResultRecycleUnit, TargetKind: types.TargetCity,
		RarePopUp: true, RuleName: "Recycle Unit", UIName: "Disband Unit Recover"},
	{ID: types.ActionDisbandUnit, Result: types.ResultDisbandUnit, TargetKind: types.TargetSelf,
		RarePopUp: true, RuleName: "Disband Unit"},
	{ID: types.ActionHomeCity, Result: types.ResultHomeCity, TargetKind: types.TargetCity,
		RarePopUp: true, RuleName: "Home City", UIName: "Set Home City"},
	{ID: types.ActionUpgradeUnit, Result: types.ResultUpgradeUnit, TargetKind: types.TargetCity,
		RarePopUp: true, RuleName: "Upgrade Unit"},
	{ID: types.ActionParadrop, Result: types.ResultParadrop, TargetKind: types.TargetTile,
		RarePopUp: true, MaxDistance: MaxParadropRange, RuleName: "Paradrop Unit"},
	{ID: types.ActionParadropConquer, Result: types.ResultParadropConquer, TargetKind: types.TargetTile,
		Hostile: true, RarePopUp: true, MaxDistance: MaxParadropRange, RuleName: "Paradrop Unit Conquer",
		SubResults: []types.SubResult{types.SubResultHutEnter}},
	{ID: types.ActionAirlift, Result: types.ResultAirlift, TargetKind: types.TargetCity,
		RarePopUp: true, MinDistance: 1, MaxDistance: UnlimitedDistance, RuleName: "Airlift Unit"},
	{ID: types.ActionAttack, Result: types.ResultAttack, TargetKind: types.TargetTile,
		Hostile: true, MinDistance: 1, MaxDistance: 1, RuleName: "Attack"},
	{ID: types.ActionConquerCity, Result: types.ResultConquerCity, TargetKind: types.TargetCity,
		Hostile: true, MinDistance: 1, MaxDistance: 1, RuleName: "Conquer City"},
	{ID: types.ActionFortify, Result: types.ResultFortify, TargetKind: types.TargetSelf,
		RarePopUp: true, RuleName: "Fortify"},
	{ID: types.ActionUnitMove, Result: types.ResultUnitMove, TargetKind: types.TargetTile,
		MinDistance: 1, MaxDistance: 1, RuleName: "Unit Move",
		SubResults: []types.SubResult{types.SubResultHutEnter}},
	{ID: types.ActionTransportBoard, Result: types.ResultTransportBoard, TargetKind: types.TargetUnit,
		RarePopUp: true, RuleName: "Transport Board"},
	{ID: types.ActionTransportEmbark, Result: types.ResultTransportEmbark, TargetKind: types.TargetUnit,
		MinDistance: 1, MaxDistance: 1, RuleName: "Transport Embark"},
	{ID: types.ActionTransportUnload, Result: types.ResultTransportUnload, TargetKind: types.TargetUnit,
		RarePopUp: true, RuleName: "Transport Unload"},
	{ID: types.ActionTransportDisembark, Result: types.ResultTransportDisembark, TargetKind: types.TargetTile,
		MinDistance: 1, MaxDistance: 1, RuleName: "Transport Disembark",
		SubResults: []types.SubResult{types.SubResultHutEnter}},
}

var resultNames = [types.ResultCount]string{
	types.ResultEstablishEmbassy:     "Establish Embassy",
	types.ResultInvestigateCity:      "Investigate City",
	types.ResultPoisonCity:           "Poison City",
	types.ResultStealGold:            "Steal Gold",
	types.ResultSabotageCity:         "Sabotage City",
	types.ResultTargetedSabotageCity: "Targeted Sabotage City",
	types.ResultStealTech:            "Steal Tech",
	types.ResultTargetedStealTech:    "Targeted Steal Tech",
	types.ResultInciteCity:           "Incite City",
	types.ResultTradeRoute:           "Trade Route",
	types.ResultMarketplace:          "Marketplace",
	types.ResultHelpWonder:           "Help Wonder",
	types.ResultBribeUnit:            "Bribe Unit",
	types.ResultSabotageUnit:         "Sabotage Unit",
	types.ResultCaptureUnits:         "Capture Units",
	types.ResultFoundCity:            "Found City",
	types.ResultJoinCity:             "Join City",
	types.ResultStealMaps:            "Steal Maps",
	types.ResultBombard:              "Bombard",
	types.ResultSpyNuke:              "Suitcase Nuke",
	types.ResultNuke:                 "Explode Nuclear",
	types.ResultDestroyCity:          "Destroy City",
	types.ResultExpelUnit:            "Expel Unit",
	types.ResultRecycleUnit:          "Recycle Unit",
	types.ResultDisbandUnit:          "Disband Unit",
	types.ResultHomeCity:             "Home City",
	types.ResultUpgradeUnit:          "Upgrade Unit",
	types.ResultParadrop:             "Paradrop",
	types.ResultParadropConquer:      "Paradrop Conquer",
	types.ResultAirlift:              "Airlift",
	types.ResultAttack:               "Attack",
	types.ResultConquerCity:          "Conquer City",
	types.ResultFortify:              "Fortify",
	types.ResultUnitMove:             "Unit Move",
	types.ResultTransportBoard:       "Transport Board",
	types.ResultTransportEmbark:      "Transport Embark",
	types.ResultTransportUnload:      "Transport Unload",
	types.ResultTransportDisembark:   "Transport Disembark",
}
