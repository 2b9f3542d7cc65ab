package stat

// DefaultCatalog builds the built-in template catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(templateDefs...)
	if err != nil {
		panic("stat: invalid built-in template: " + err.Error())
	}
	return c
}

func flat(name string, vt ValueType, flags Flags, placeholder int) TemplateStat {
	return TemplateStat{Name: name, ValueType: vt, Flags: flags, Placeholder: placeholder}
}

var templateDefs = []Template{
	// Flat damage
	{ID: "flatPhys", Description: "Adds # to # Physical Damage", Stats: []TemplateStat{
		flat(MinPhysicalDamage, Base, 0, 1), flat(MaxPhysicalDamage, Base, 0, 2)}},
	{ID: "flatEle", Description: "Adds # to # Elemental Damage", Stats: []TemplateStat{
		flat(MinElementalDamage, Base, 0, 1), flat(MaxElementalDamage, Base, 0, 2)}},
	{ID: "flatChaos", Description: "Adds # to # Chaos Damage", Stats: []TemplateStat{
		flat(MinChaosDamage, Base, 0, 1), flat(MaxChaosDamage, Base, 0, 2)}},

	// Damage scaling
	{ID: "incDamage", Description: "#% increased Damage", Stats: []TemplateStat{flat(Damage, Increased, 0, 1)}},
	{ID: "incPhys", Description: "#% increased Physical Damage", Stats: []TemplateStat{flat(PhysicalDamage, Increased, 0, 1)}},
	{ID: "incEle", Description: "#% increased Elemental Damage", Stats: []TemplateStat{flat(ElementalDamage, Increased, 0, 1)}},
	{ID: "incChaos", Description: "#% increased Chaos Damage", Stats: []TemplateStat{flat(ChaosDamage, Increased, 0, 1)}},
	{ID: "moreDamage", Description: "#% more Damage", Stats: []TemplateStat{flat(Damage, More, 0, 1)}},
	{ID: "moreAttackDamage", Description: "#% more Attack Damage", Stats: []TemplateStat{flat(Damage, More, FlagAttack, 1)}},
	{ID: "incAttackDamage", Description: "#% increased Attack Damage", Stats: []TemplateStat{flat(Damage, Increased, FlagAttack, 1)}},
	{ID: "incPhysPerStr", Description: "#% increased Physical Damage per # Strength", Stats: []TemplateStat{
		{Name: PhysicalDamage, ValueType: Increased, Placeholder: 1, PerStat: Strength, DivisorPlaceholder: 2}}},

	// Attack
	{ID: "attackSpeed", Description: "# Attacks per Second", Stats: []TemplateStat{flat(AttackSpeed, Base, 0, 1)}},
	{ID: "incAttackSpeed", Description: "#% increased Attack Speed", Stats: []TemplateStat{flat(AttackSpeed, Increased, FlagAttack, 1)}},
	{ID: "moreAttackSpeed", Description: "#% more Attack Speed", Stats: []TemplateStat{flat(AttackSpeed, More, FlagAttack, 1)}},
	{ID: "incAttackSpeedPerDex", Description: "#% increased Attack Speed per # Dexterity", Stats: []TemplateStat{
		{Name: AttackSpeed, ValueType: Increased, Flags: FlagAttack, Placeholder: 1, PerStat: Dexterity, DivisorPlaceholder: 2}}},
	{ID: "hitChance", Description: "+#% Chance to Hit", Stats: []TemplateStat{flat(HitChance, Base, FlagAttack, 1)}},
	{ID: "incHitChance", Description: "#% increased Chance to Hit", Stats: []TemplateStat{flat(HitChance, Increased, FlagAttack, 1)}},
	{ID: "critChance", Description: "+#% Critical Strike Chance", Stats: []TemplateStat{flat(CritChance, Base, FlagAttack, 1)}},
	{ID: "incCritChance", Description: "#% increased Critical Strike Chance", Stats: []TemplateStat{flat(CritChance, Increased, FlagAttack, 1)}},
	{ID: "critMulti", Description: "+#% Critical Strike Multiplier", Stats: []TemplateStat{flat(CritMulti, Base, FlagAttack, 1)}},

	// Bleed
	{ID: "bleedChance", Description: "#% Chance to cause Bleeding", Stats: []TemplateStat{flat(BleedChance, Base, FlagBleed, 1)}},
	{ID: "incBleedDamage", Description: "#% increased Bleeding Damage", Stats: []TemplateStat{flat(Damage, Increased, FlagBleed, 1)}},
	{ID: "moreBleedDamage", Description: "#% more Bleeding Damage", Stats: []TemplateStat{flat(Damage, More, FlagBleed, 1)}},
	{ID: "bleedDuration", Description: "Bleeding lasts # seconds", Stats: []TemplateStat{flat(BleedDuration, Base, FlagBleed, 1)}},
	{ID: "incBleedDuration", Description: "#% increased Bleeding Duration", Stats: []TemplateStat{flat(BleedDuration, Increased, FlagBleed, 1)}},
	{ID: "incDotDamage", Description: "#% increased Damage over Time", Stats: []TemplateStat{flat(Damage, Increased, FlagDamageOverTime, 1)}},

	// Mana
	{ID: "maxMana", Description: "+# to Maximum Mana", Stats: []TemplateStat{flat(MaxMana, Base, 0, 1)}},
	{ID: "incMaxMana", Description: "#% increased Maximum Mana", Stats: []TemplateStat{flat(MaxMana, Increased, 0, 1)}},
	{ID: "manaPerInt", Description: "+# to Maximum Mana per # Intelligence", Stats: []TemplateStat{
		{Name: MaxMana, ValueType: Base, Placeholder: 1, PerStat: Intelligence, DivisorPlaceholder: 2}}},
	{ID: "manaRegen", Description: "Regenerate # Mana per second", Stats: []TemplateStat{flat(ManaRegen, Base, 0, 1)}},
	{ID: "incManaRegen", Description: "#% increased Mana Regeneration Rate", Stats: []TemplateStat{flat(ManaRegen, Increased, 0, 1)}},
	{ID: "manaCost", Description: "Costs # Mana per Attack", Stats: []TemplateStat{flat(AttackManaCost, Base, 0, 1)}},
	{ID: "incManaCost", Description: "#% increased Mana Cost", Stats: []TemplateStat{flat(AttackManaCost, Increased, 0, 1)}},
	{ID: "reducedManaCost", Description: "#% reduced Mana Cost", Stats: []TemplateStat{
		{Name: AttackManaCost, ValueType: Increased, Placeholder: 1, Negate: true}}},
	{ID: "moreManaCost", Description: "#% more Mana Cost", Stats: []TemplateStat{flat(AttackManaCost, More, 0, 1)}},

	// Attributes
	{ID: "strength", Description: "+# to Strength", Stats: []TemplateStat{flat(Strength, Base, 0, 1)}},
	{ID: "dexterity", Description: "+# to Dexterity", Stats: []TemplateStat{flat(Dexterity, Base, 0, 1)}},
	{ID: "intelligence", Description: "+# to Intelligence", Stats: []TemplateStat{flat(Intelligence, Base, 0, 1)}},
	{ID: "allAttributes", Description: "+# to all Attributes", Stats: []TemplateStat{
		flat(Strength, Base, 0, 1), flat(Dexterity, Base, 0, 1), flat(Intelligence, Base, 0, 1)}},
	{ID: "incAttributes", Description: "#% increased Attributes", Stats: []TemplateStat{
		flat(Strength, Increased, 0, 1), flat(Dexterity, Increased, 0, 1), flat(Intelligence, Increased, 0, 1)}},

	// Conversion
	{ID: "physToEle", Description: "#% of Physical Damage Converted to Elemental Damage", Stats: []TemplateStat{
		flat(ConvertedToName(Physical, Elemental), Base, 0, 1)}},
	{ID: "physToChaos", Description: "#% of Physical Damage Converted to Chaos Damage", Stats: []TemplateStat{
		flat(ConvertedToName(Physical, Chaos), Base, 0, 1)}},
	{ID: "eleToChaos", Description: "#% of Elemental Damage Converted to Chaos Damage", Stats: []TemplateStat{
		flat(ConvertedToName(Elemental, Chaos), Base, 0, 1)}},
	{ID: "skillPhysToEle", Description: "Skill: #% of Physical Damage Converted to Elemental Damage", Stats: []TemplateStat{
		flat(SkillConvertedToName(Physical, Elemental), Base, 0, 1)}},
	{ID: "skillPhysToChaos", Description: "Skill: #% of Physical Damage Converted to Chaos Damage", Stats: []TemplateStat{
		flat(SkillConvertedToName(Physical, Chaos), Base, 0, 1)}},
	{ID: "skillEleToChaos", Description: "Skill: #% of Elemental Damage Converted to Chaos Damage", Stats: []TemplateStat{
		flat(SkillConvertedToName(Elemental, Chaos), Base, 0, 1)}},
	{ID: "physGainAsEle", Description: "Gain #% of Physical Damage as Extra Elemental Damage", Stats: []TemplateStat{
		flat(GainAsName(Physical, Elemental), Base, 0, 1)}},
	{ID: "physGainAsChaos", Description: "Gain #% of Physical Damage as Extra Chaos Damage", Stats: []TemplateStat{
		flat(GainAsName(Physical, Chaos), Base, 0, 1)}},
	{ID: "eleGainAsChaos", Description: "Gain #% of Elemental Damage as Extra Chaos Damage", Stats: []TemplateStat{
		flat(GainAsName(Elemental, Chaos), Base, 0, 1)}},
}
