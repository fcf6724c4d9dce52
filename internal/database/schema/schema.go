package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Character Progression Schema

-- 1. Character profiles (one per user)
CREATE TABLE IF NOT EXISTS characters (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID UNIQUE NOT NULL,
    name VARCHAR(50) NOT NULL DEFAULT 'Adventurer',
    level INTEGER NOT NULL DEFAULT 1,
    total_xp BIGINT NOT NULL DEFAULT 0,
    stat_points INTEGER NOT NULL DEFAULT 0,
    respec_tokens INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- 2. Core attribute rows (six per character)
CREATE TABLE IF NOT EXISTS character_stats (
    character_id UUID NOT NULL REFERENCES characters(id) ON DELETE CASCADE,
    stat_code VARCHAR(3) NOT NULL,
    base_value INTEGER NOT NULL DEFAULT 10,
    stat_xp BIGINT NOT NULL DEFAULT 0,
    allocated_bonus INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (character_id, stat_code)
);

-- 3. Append-only activity log
CREATE TABLE IF NOT EXISTS activity_log (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    character_id UUID NOT NULL REFERENCES characters(id) ON DELETE CASCADE,
    activity_type VARCHAR(100) NOT NULL,
    activity_data JSONB,
    source VARCHAR(50) NOT NULL DEFAULT 'manual',
    source_ref VARCHAR(255),
    xp_grants JSONB NOT NULL DEFAULT '{}',
    activity_time TIMESTAMPTZ NOT NULL,
    logged_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_activity_log_character_time
    ON activity_log (character_id, activity_time DESC);

-- 4. Skill-tree node configuration
CREATE TABLE IF NOT EXISTS stat_nodes (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    code VARCHAR(100) UNIQUE NOT NULL,
    name VARCHAR(100) NOT NULL,
    description TEXT,
    node_type VARCHAR(20) NOT NULL DEFAULT 'minor',
    tree_branch VARCHAR(20),
    position_x DOUBLE PRECISION NOT NULL DEFAULT 0,
    position_y DOUBLE PRECISION NOT NULL DEFAULT 0,
    required_points INTEGER NOT NULL DEFAULT 1,
    effects JSONB NOT NULL DEFAULT '[]',
    icon VARCHAR(100),
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- 5. Tree edges
CREATE TABLE IF NOT EXISTS stat_node_edges (
    from_node_id UUID NOT NULL REFERENCES stat_nodes(id) ON DELETE CASCADE,
    to_node_id UUID NOT NULL REFERENCES stat_nodes(id) ON DELETE CASCADE,
    bidirectional BOOLEAN NOT NULL DEFAULT TRUE,
    PRIMARY KEY (from_node_id, to_node_id)
);

-- 6. Per-character allocations
CREATE TABLE IF NOT EXISTS character_nodes (
    character_id UUID NOT NULL REFERENCES characters(id) ON DELETE CASCADE,
    node_id UUID NOT NULL REFERENCES stat_nodes(id),
    allocated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (character_id, node_id)
);

-- 7. Skill definitions
CREATE TABLE IF NOT EXISTS skills (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    code VARCHAR(100) UNIQUE NOT NULL,
    name VARCHAR(100) NOT NULL,
    description TEXT,
    required_node_id UUID REFERENCES stat_nodes(id),
    stat_requirements JSONB NOT NULL DEFAULT '{}',
    is_active BOOLEAN NOT NULL DEFAULT TRUE
);

-- 8. Per-character unlocked skills
CREATE TABLE IF NOT EXISTS character_skills (
    character_id UUID NOT NULL REFERENCES characters(id) ON DELETE CASCADE,
    skill_id UUID NOT NULL REFERENCES skills(id),
    unlocked_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    times_used INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (character_id, skill_id)
);

-- 9. Derived stat formulas (computed on read, never stored per character)
CREATE TABLE IF NOT EXISTS derived_stats (
    code VARCHAR(50) PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    description TEXT,
    formula TEXT NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE
);

-- Seed derived stats
INSERT INTO derived_stats (code, name, formula) VALUES
    ('hp', 'Health', '100 + STA * 10 + STR * 5'),
    ('energy', 'Energy', '50 + STA * 5 + WIS * 3'),
    ('focus', 'Focus', '(INT + WIS) / 2'),
    ('fortune', 'Fortune', 'LCK * 2 + CHA')
ON CONFLICT DO NOTHING;
`

// SeedTreeSQL seeds a starter skill tree: one origin per attribute
// branch plus a short chain of minor, notable and skill nodes. Intended
// for fresh installs only; setup skips it when any node already exists.
const SeedTreeSQL = `
INSERT INTO stat_nodes (code, name, description, node_type, tree_branch, position_x, position_y, required_points, effects) VALUES
    ('str_origin',  'Foundation of Strength',  'Entry into the Strength branch',     'origin',  'STR', 0,  0, 1, '[{"type":"stat_bonus","stat":"STR","value":1}]'),
    ('str_minor_1', 'Conditioning',            'Keep showing up',                    'minor',   'STR', 0,  1, 1, '[{"type":"stat_bonus","stat":"STR","value":1}]'),
    ('str_notable', 'Iron Frame',              'Strength that stays with you',       'notable', 'STR', 0,  2, 2, '[{"type":"stat_bonus","stat":"STR","value":3}]'),
    ('str_skill',   'Power Through',           'Push past a wall once per day',      'skill',   'STR', 1,  2, 2, '[{"type":"unlock_skill","skill_code":"power_through"}]'),
    ('int_origin',  'Foundation of Intellect', 'Entry into the Intelligence branch', 'origin',  'INT', 3,  0, 1, '[{"type":"stat_bonus","stat":"INT","value":1}]'),
    ('int_minor_1', 'Study Habit',             'A little every day',                 'minor',   'INT', 3,  1, 1, '[{"type":"stat_bonus","stat":"INT","value":1}]'),
    ('int_notable', 'Deep Work',               'Hours that compound',                'notable', 'INT', 3,  2, 2, '[{"type":"stat_bonus","stat":"INT","value":3}]'),
    ('wis_origin',  'Foundation of Wisdom',    'Entry into the Wisdom branch',       'origin',  'WIS', 6,  0, 1, '[{"type":"stat_bonus","stat":"WIS","value":1}]'),
    ('wis_minor_1', 'Stillness',               'Sit with it',                        'minor',   'WIS', 6,  1, 1, '[{"type":"stat_bonus","stat":"WIS","value":1}]'),
    ('sta_origin',  'Foundation of Stamina',   'Entry into the Stamina branch',      'origin',  'STA', 9,  0, 1, '[{"type":"stat_bonus","stat":"STA","value":1}]'),
    ('sta_minor_1', 'Second Wind',             'Recover faster',                     'minor',   'STA', 9,  1, 1, '[{"type":"stat_bonus","stat":"STA","value":1}]'),
    ('cha_origin',  'Foundation of Charisma',  'Entry into the Charisma branch',     'origin',  'CHA', 12, 0, 1, '[{"type":"stat_bonus","stat":"CHA","value":1}]'),
    ('cha_minor_1', 'Small Talk',              'It gets easier',                     'minor',   'CHA', 12, 1, 1, '[{"type":"stat_bonus","stat":"CHA","value":1}]'),
    ('lck_origin',  'Foundation of Luck',      'Entry into the Luck branch',         'origin',  'LCK', 15, 0, 1, '[{"type":"stat_bonus","stat":"LCK","value":1}]'),
    ('lck_minor_1', 'Open Door',               'Say yes more often',                 'minor',   'LCK', 15, 1, 1, '[{"type":"stat_bonus","stat":"LCK","value":1}]')
ON CONFLICT (code) DO NOTHING;

INSERT INTO stat_node_edges (from_node_id, to_node_id)
SELECT f.id, t.id FROM (VALUES
    ('str_origin', 'str_minor_1'),
    ('str_minor_1', 'str_notable'),
    ('str_minor_1', 'str_skill'),
    ('int_origin', 'int_minor_1'),
    ('int_minor_1', 'int_notable'),
    ('wis_origin', 'wis_minor_1'),
    ('sta_origin', 'sta_minor_1'),
    ('cha_origin', 'cha_minor_1'),
    ('lck_origin', 'lck_minor_1')
) AS e(from_code, to_code)
JOIN stat_nodes f ON f.code = e.from_code
JOIN stat_nodes t ON t.code = e.to_code
ON CONFLICT DO NOTHING;

INSERT INTO skills (code, name, description, required_node_id, stat_requirements)
SELECT 'power_through', 'Power Through', 'Log one extra gym session without fatigue penalty',
       n.id, '{"STR": 12}'::jsonb
FROM stat_nodes n WHERE n.code = 'str_skill'
ON CONFLICT (code) DO NOTHING;
`
