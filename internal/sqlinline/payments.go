package sqlinline

const QInsertPayment = `--sql 5e3a09d9-96b5-41c6-8030-bb7da9f5d534
insert into monthly_payments(id, donor_id, month, amount, status, paid_at, created_at, updated_at)
values ($1::uuid, $2::uuid, $3::text, $4::numeric, $5::text, $6::timestamptz, $7::timestamptz, $7::timestamptz);
`

const QInsertPaymentIfAbsent = `--sql f3263466-7b03-4039-a264-ff96f67f8c20
insert into monthly_payments(id, donor_id, month, amount, status, paid_at, created_at, updated_at)
values ($1::uuid, $2::uuid, $3::text, $4::numeric, $5::text, $6::timestamptz, $7::timestamptz, $7::timestamptz)
on conflict (donor_id, month) do nothing;
`

const QSelectPaymentByID = `--sql 3845f829-3cbf-4372-ad3b-7fb412501878
select id::text, donor_id::text, month, amount, status, paid_at, created_at, updated_at
from monthly_payments
where id = $1::uuid
limit 1;
`

const QSelectPaymentByDonorMonth = `--sql 6dc36a04-e000-4f0d-8969-ca8744e113e9
select id::text, donor_id::text, month, amount, status, paid_at, created_at, updated_at
from monthly_payments
where donor_id = $1::uuid
  and month = $2::text
limit 1;
`

const QListPaymentsByMonth = `--sql 7a33b08c-d3f9-4f57-a847-8906e53a45be
select id::text, donor_id::text, month, amount, status, paid_at, created_at, updated_at
from monthly_payments
where month = $1::text
order by amount desc, created_at asc;
`

const QLastPaidByDonor = `--sql da51b6e9-a202-40fe-aaad-5c6ad91e7aad
select distinct on (donor_id) id::text, donor_id::text, month, amount, status, paid_at, created_at, updated_at
from monthly_payments
where status = 'PAID'
order by donor_id, month desc;
`

const QLastPaidInMonth = `--sql 215e8a20-97a9-4c14-b1eb-bafb379a58f0
select id::text, donor_id::text, month, amount, status, paid_at, created_at, updated_at
from monthly_payments
where month = $1::text
  and status = 'PAID'
  and paid_at is not null
order by paid_at desc
limit 1;
`

const QUpdatePayment = `--sql 34238b04-5074-4f41-8b03-c9a93877c9fa
update monthly_payments
set amount = $2::numeric,
    status = $3::text,
    paid_at = $4::timestamptz,
    updated_at = $5::timestamptz
where id = $1::uuid;
`

const QPaidDonorIDs = `--sql ac2584c4-64e5-46fa-970d-5eabcf15d4ec
select donor_id::text
from monthly_payments
where month = $1::text
  and status = 'PAID';
`
