package sqlinline

// raised and donors are owned by the donations trigger; no statement here
// may set them.

const QInsertProgram = `--sql 5a2e9c07-d3b6-4f18-8e40-71cad5b29f63
insert into programs(id, title, description, category, target, raised, donors, created_at)
values (gen_random_uuid(), $1::text, $2::text, $3::text, $4::bigint, 0, 0, now())
returning id, created_at;
`

const QUpdateProgram = `--sql 84d7f1b5-26e9-4c03-9a58-e0b3c6a47d12
update programs
set title = $2::text, description = $3::text, category = $4::text, target = $5::bigint
where id = $1::uuid
returning id;
`

const QDeleteProgram = `--sql 96c3e8d0-4a71-4b5f-82e6-1d50f9b7a3c4
delete from programs
where id = $1::uuid;
`

const QSelectProgramByID = `--sql 02b5d9f7-e814-4c6a-b093-57a2e61f0c88
select id, title, description, category, target, raised, donors, created_at
from programs
where id = $1::uuid;
`

const QListPrograms = `--sql b1f08a63-79d2-4e45-a6c1-3e84d0b52f79
select id, title, description, category, target, raised, donors, created_at
from programs
order by created_at desc;
`
