// Package types defines the shared data structures for the actioncore engine.
// This package contains only type definitions and constants, no logic.
package types

// ActionID identifies one kind of interaction an actor may attempt.
type ActionID int

const (
	ActionEstablishEmbassy ActionID = iota
	ActionEstablishEmbassyStay
	ActionSpyInvestigateCity
	ActionInvestigateCitySpend
	ActionSpyPoison
	ActionSpyStealGold
	ActionSpySabotageCity
	ActionSpyTargetedSabotageCity
	ActionSpyStealTech
	ActionSpyTargetedStealTech
	ActionSpyInciteCity
	ActionTradeRoute
	ActionMarketplace
	ActionHelpWonder
	ActionSpyBribeUnit
	ActionSpySabotageUnit
	ActionCaptureUnits
	ActionFoundCity
	ActionJoinCity
	ActionStealMaps
	ActionBombard
	ActionSpyNuke
	ActionNuke
	ActionDestroyCity
	ActionExpelUnit
	ActionRecycleUnit
	ActionDisbandUnit
	ActionHomeCity
	ActionUpgradeUnit
	ActionParadrop
	ActionParadropConquer
	ActionAirlift
	ActionAttack
	ActionConquerCity
	ActionFortify
	ActionUnitMove
	ActionTransportBoard
	ActionTransportEmbark
	ActionTransportUnload
	ActionTransportDisembark

	// ActionCount is the number of known actions. Not a valid action.
	ActionCount
)

// ActionResult is what an action does when it succeeds. Several actions
// may share a result (e.g. establishing an embassy with or without
// keeping the unit). Obligatory requirements are registered per result.
type ActionResult int

const (
	ResultEstablishEmbassy ActionResult = iota
	ResultInvestigateCity
	ResultPoisonCity
	ResultStealGold
	ResultSabotageCity
	ResultTargetedSabotageCity
	ResultStealTech
	ResultTargetedStealTech
	ResultInciteCity
	ResultTradeRoute
	ResultMarketplace
	ResultHelpWonder
	ResultBribeUnit
	ResultSabotageUnit
	ResultCaptureUnits
	ResultFoundCity
	ResultJoinCity
	ResultStealMaps
	ResultBombard
	ResultSpyNuke
	ResultNuke
	ResultDestroyCity
	ResultExpelUnit
	ResultRecycleUnit
	ResultDisbandUnit
	ResultHomeCity
	ResultUpgradeUnit
	ResultParadrop
	ResultParadropConquer
	ResultAirlift
	ResultAttack
	ResultConquerCity
	ResultFortify
	ResultUnitMove
	ResultTransportBoard
	ResultTransportEmbark
	ResultTransportUnload
	ResultTransportDisembark

	// ResultCount is the number of known results. Not a valid result.
	ResultCount
)

// SubResult is an optional extra consequence of an action's result.
type SubResult int

const (
	SubResultHutEnter SubResult = iota
	SubResultHutFrighten

	// SubResultCount is the number of known sub results.
	SubResultCount
)

// ActorKind is the category of entity performing an action.
type ActorKind int

const (
	ActorUnit ActorKind = iota
)

// TargetKind is the category of entity an action targets.
type TargetKind int

const (
	TargetCity TargetKind = iota
	TargetUnit
	TargetUnits // every unit at a tile
	TargetTile
	TargetExtras
	TargetSelf
)

// ReqKind names what a requirement tests.
type ReqKind string

const (
	ReqDiplRel       ReqKind = "DiplRel"
	ReqUnitFlag      ReqKind = "UnitFlag"
	ReqUnitClassFlag ReqKind = "UnitClassFlag"
	ReqUnitType      ReqKind = "UnitType"
	ReqUnitState     ReqKind = "UnitState"
	ReqActivity      ReqKind = "Activity"
	ReqMinMoves      ReqKind = "MinMoves"
	ReqMinVeteran    ReqKind = "MinVeteran"
	ReqCityTile      ReqKind = "CityTile"
	ReqTerrainFlag   ReqKind = "TerrainFlag"
	ReqNation        ReqKind = "Nation"
	ReqTech          ReqKind = "Tech"
	ReqBuilding      ReqKind = "Building"
	ReqMaxTileUnits  ReqKind = "MaxTileUnits"
)

// ReqRange is the scope a requirement is evaluated at.
type ReqRange string

const (
	RangeLocal  ReqRange = "Local"
	RangeTile   ReqRange = "Tile"
	RangeCity   ReqRange = "City"
	RangePlayer ReqRange = "Player"
)

// Requirement is a single testable condition. Present=false inverts it.
type Requirement struct {
	Kind    ReqKind
	Range   ReqRange
	Present bool
	Quiet   bool // hidden from help texts
	Value   string
}

// RequirementVector is a conjunction of requirements.
type RequirementVector []Requirement

// Enabler is one authored rule variant: if both vectors hold the action
// is enabled (hard requirements permitting).
type Enabler struct {
	ID         string
	Action     ActionID
	ActorReqs  RequirementVector
	TargetReqs RequirementVector
	Comment    string
}

// Effect is a ruleset bonus that applies when its requirements hold.
type Effect struct {
	Type  string // e.g. "Spy_Resistant"
	Value int
	Reqs  RequirementVector
}

// Nation is the ruleset data about a nation the rules need.
type Nation struct {
	ID        string
	Barbarian string // "", "land", "sea" or "animal"
}

// Settings holds game settings that hard requirements consult.
type Settings struct {
	TradeMinDist        int
	AddToSizeLimit      int
	CityMinDist         int
	PreventNewCities    bool
	TechStealAllowHoles bool
}

// RulesetInfo is ruleset metadata from the Lua Ruleset{} call.
type RulesetInfo struct {
	Name        string
	Version     string
	Description string
}

// Diplomatic states between two players.
const (
	DiplWar       = "War"
	DiplCeasefire = "Ceasefire"
	DiplArmistice = "Armistice"
	DiplPeace     = "Peace"
	DiplAlliance  = "Alliance"
	DiplNoContact = "Never met"
	DiplTeam      = "Team"
)

// Relation is one player's view of its relationship with another.
type Relation struct {
	State       string `yaml:"state" json:"state"`
	RealEmbassy bool   `yaml:"real_embassy" json:"real_embassy"`
	Contact     bool   `yaml:"contact" json:"contact"`
	SeesTechs   bool   `yaml:"sees_techs" json:"sees_techs"`
}

// Player is a snapshot of the player attributes the rules consult.
type Player struct {
	ID          string              `yaml:"id" json:"id"`
	Nation      string              `yaml:"nation" json:"nation"`
	Gold        int                 `yaml:"gold" json:"gold"`
	Techs       []string            `yaml:"techs" json:"techs"`
	Reachable   []string            `yaml:"reachable_techs" json:"reachable_techs"` // techs whose prerequisites are known
	UniqueUnits []string            `yaml:"unique_units" json:"unique_units"`       // unique unit types already held
	Relations   map[string]Relation `yaml:"relations" json:"relations"`             // keyed by other player id
}

// VeteranLevel is one veteran rank of a unit type.
type VeteranLevel struct {
	Name      string `yaml:"name" json:"name"`
	PowerFact int    `yaml:"power_fact" json:"power_fact"`
}

// UnitType is a snapshot of a unit type.
type UnitType struct {
	Name              string         `yaml:"name" json:"name"`
	Class             string         `yaml:"class" json:"class"`
	ClassFlags        []string       `yaml:"class_flags" json:"class_flags"`
	Flags             []string       `yaml:"flags" json:"flags"`
	PopCost           int            `yaml:"pop_cost" json:"pop_cost"`
	BombardRate       int            `yaml:"bombard_rate" json:"bombard_rate"`
	AttackStrength    int            `yaml:"attack_strength" json:"attack_strength"`
	ObsoletedBy       string         `yaml:"obsoleted_by" json:"obsoleted_by"`
	ParatroopersMRReq int            `yaml:"paratroopers_mr_req" json:"paratroopers_mr_req"`
	Unique            bool           `yaml:"unique" json:"unique"`
	AttackNonNative   bool           `yaml:"attack_non_native" json:"attack_non_native"`
	VeteranLevels     []VeteranLevel `yaml:"veteran_levels" json:"veteran_levels"`
}

// Unit is a snapshot of a unit.
type Unit struct {
	ID           string    `yaml:"id" json:"id"`
	Owner        string    `yaml:"owner" json:"owner"`
	Type         *UnitType `yaml:"type" json:"type"`
	Veteran      int       `yaml:"veteran" json:"veteran"`
	MovesLeft    int       `yaml:"moves_left" json:"moves_left"`
	HomeCity     string    `yaml:"home_city" json:"home_city"`
	Activity     string    `yaml:"activity" json:"activity"`
	Paradropped  bool      `yaml:"paradropped" json:"paradropped"`
	Transporting bool      `yaml:"transporting" json:"transporting"`
	Transported  bool      `yaml:"transported" json:"transported"`
	OnLivable    bool      `yaml:"on_livable_tile" json:"on_livable_tile"`
	OnNative     bool      `yaml:"on_native_tile" json:"on_native_tile"`
	CanUpgrade   bool      `yaml:"can_upgrade" json:"can_upgrade"` // outcome of the external upgrade test
	VisibleToAct bool      `yaml:"visible" json:"visible"`         // the acting side can see this unit
}

// City is a snapshot of a city.
type City struct {
	ID             string   `yaml:"id" json:"id"`
	Name           string   `yaml:"name" json:"name"`
	Owner          string   `yaml:"owner" json:"owner"`
	Size           int      `yaml:"size" json:"size"`
	SizeLimit      int      `yaml:"size_limit" json:"size_limit"` // 0 is unlimited
	Buildings      []string `yaml:"buildings" json:"buildings"`
	ShieldStock    int      `yaml:"shield_stock" json:"shield_stock"`
	ProductionCost int      `yaml:"production_cost" json:"production_cost"`
	TradePartners  []string `yaml:"trade_partners" json:"trade_partners"`
	MaxTradeRoutes int      `yaml:"max_trade_routes" json:"max_trade_routes"`
	Airlift        int      `yaml:"airlift" json:"airlift"` // remaining airlift capacity this turn
	X              int      `yaml:"x" json:"x"`
	Y              int      `yaml:"y" json:"y"`
}

// Pos is a map position.
type Pos struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Tile is a snapshot of a map tile.
type Tile struct {
	X            int      `yaml:"x" json:"x"`
	Y            int      `yaml:"y" json:"y"`
	Owner        string   `yaml:"owner" json:"owner"`
	Terrain      string   `yaml:"terrain" json:"terrain"`
	TerrainFlags []string `yaml:"terrain_flags" json:"terrain_flags"`
	City         string   `yaml:"city" json:"city"`                   // id of the city on the tile, if any
	Units        []*Unit  `yaml:"units" json:"units"`                 // every unit on the tile
	NearbyCities []Pos    `yaml:"nearby_cities" json:"nearby_cities"` // known cities within citymindist
}

// Visibility describes what the acting side knows about a target entity.
// It is ignored when evaluating omnisciently.
type Visibility struct {
	Unit          bool `yaml:"unit" json:"unit"`
	Tile          bool `yaml:"tile" json:"tile"`             // currently seen
	KnowsTile     bool `yaml:"knows_tile" json:"knows_tile"` // seen at least once
	City          bool `yaml:"city" json:"city"`             // the city is known to exist
	CityInternals bool `yaml:"city_internals" json:"city_internals"`
	CityExternals bool `yaml:"city_externals" json:"city_externals"`
	Surroundings  bool `yaml:"surroundings" json:"surroundings"` // every tile within citymindist is seen
	Effects       bool `yaml:"effects" json:"effects"`           // effect sources at the tile are known
}

// CombatOdds is the externally computed outcome of a regular battle.
type CombatOdds struct {
	Defender  *Unit   `yaml:"defender" json:"defender"`
	WinChance float64 `yaml:"win_chance" json:"win_chance"`
}

// Context is the attribute snapshot of one side of an interaction.
type Context struct {
	Player     *Player     `yaml:"player" json:"player"`
	City       *City       `yaml:"city" json:"city"`
	Tile       *Tile       `yaml:"tile" json:"tile"`
	Unit       *Unit       `yaml:"unit" json:"unit"`
	UnitType   *UnitType   `yaml:"unit_type" json:"unit_type"`
	Visibility Visibility  `yaml:"visibility" json:"visibility"`
	Combat     *CombatOdds `yaml:"combat" json:"combat"`
}
