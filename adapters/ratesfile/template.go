package ratesfile

// Template is a complete rates file matching the built-in defaults.
// Delete what you do not want to override.
const Template = `# Material rates for construction-cost.
# Every setting is optional. Numbers may use unit.mm, unit.inch, unit.ft,
# unit.sqft and unit.percent, and the min, max, ceil and floor functions.

currency = "INR"

price "cement" {
  rate = 420
  unit = "bag"
}

price "sand" {
  rate = 1200
  unit = "m3"
}

price "aggregate" {
  rate = 900
  unit = "m3"
}

price "steel" {
  rate = 65
  unit = "kg"
}

# Bricks are quoted per hundred.
price "brick" {
  rate = 350
  unit = "nos"
  per  = 100
}

price "tile" {
  rate = 300
  unit = "m2"
}

price "paint" {
  rate = 500
  unit = "L"
}

# Plastering labour and application, per wet m3.
price "plaster" {
  rate = 2000
  unit = "m3"
}

standards {
  cement_bag_kg        = 50
  cement_density_kg_m3 = 1440

  dry_volume_concrete = 1.54
  dry_volume_mortar   = 1.33
  dry_volume_plaster  = 1.27

  # cement : sand : aggregate
  pcc_mix = [1, 4, 8]
  rcc_mix = {
    m20 = [1, 1.5, 3]
    m25 = [1, 1, 2]
    m30 = [1, 0.75, 1.5]
  }

  # cement : sand
  mortar_mix = {
    "1:3" = [1, 3]
    "1:4" = [1, 4]
    "1:6" = [1, 6]
  }
  plaster_mix = [1, 4]

  steel_foundation_kg_m3 = {
    isolated = 90
    combined = 100
    strip    = 80
    raft     = 110
    pile     = 120
  }
  steel_column_kg_m3 = 130
  steel_beam_kg_m3   = 120
  steel_slab_kg_m3   = 100

  brick {
    length = 230 * unit.mm
    width  = 115 * unit.mm
    height = 75 * unit.mm
    joint  = 10 * unit.mm
  }
  brick_wastage = 0.05
  tile_wastage  = 0.05

  paint_coverage_m2_per_l = {
    emulsion  = 10
    enamel    = 11
    distemper = 8
  }
}

plan "economy" {
  quantity = 1.08
  rate     = 0.90
}

plan "standard" {
  quantity = 1
  rate     = 1
}

plan "premium" {
  quantity = 0.95
  rate     = 1.15
}
`
